package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	maxBodyBytes       = 1 << 20 // 1 MiB
	msgInternalError   = "Internal server error."
	contentTypeJSON    = "application/json; charset=utf-8"
	contentTypeText    = "text/plain; charset=utf-8"
	headerContentType  = "Content-Type"
	headerNoSniff      = "X-Content-Type-Options"
	headerNoSniffValue = "nosniff"
)

// ErrEmptyBody возвращается DecodeJSON, когда тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse тело ответа с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v. Лишние поля игнорируются, лишний JSON после объекта - ошибка.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if decoder.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}

	return nil
}

// RespondJSON пишет JSON-ответ. data == nil - ответ без тела.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.Header().Set(headerNoSniff, headerNoSniffValue)
	w.WriteHeader(status)

	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondText пишет текстовый ответ
func RespondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set(headerContentType, contentTypeText)
	w.Header().Set(headerNoSniff, headerNoSniffValue)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}

// RespondMessage пишет {"message": ...} с указанным статусом
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// RespondError пишет ошибку в формате {"message": ...}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
