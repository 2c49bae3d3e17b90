package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// Logging пишет в лог метод, путь, код ответа и длительность каждого запроса
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			logger.Info("HTTP %s %s - status=%d, duration=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
