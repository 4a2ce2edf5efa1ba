package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

const retryAfterSeconds = "5"

// Middleware отвечает 503, когда контекст сервера отменен на shutdown.
// Клиент переподключится, возможно уже к другой реплике.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("Connection", "close")
					w.Header().Set("Retry-After", retryAfterSeconds)
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"service is shutting down"}`))
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
