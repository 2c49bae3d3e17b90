package locktxmanager

import (
	"context"
	"sync"
)

type lockKey struct{}

// TransactionManager сериализует критические секции для хранилища в памяти.
// Откатов нет: fn должна сама не оставлять частичных изменений.
type TransactionManager struct {
	mu sync.Mutex
}

func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// DoSerializable выполняет fn под общим мьютексом.
// Вложенный вызов с тем же контекстом не блокируется повторно.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(lockKey{}).(*TransactionManager); held == m {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, lockKey{}, m))
}
