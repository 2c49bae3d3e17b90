package dbmetrics

import (
	"errors"

	"github.com/lib/pq"
)

const (
	// serializationFailureCode SQLSTATE 40001, транзакцию можно безопасно повторить
	serializationFailureCode = "40001"

	// SerializableAttempts сколько раз менеджеры транзакций выполняют fn в DoSerializable
	SerializableAttempts = 3
)

// IsSerializationFailure сообщает, что postgres отменил сериализуемую транзакцию из-за конфликта
// с параллельной. Ошибка должна быть обернута через %w, иначе *pq.Error не найдется.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == serializationFailureCode
}
