package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orders/internal/pkg/middlewares/auth"
	"orders/pkg/logger"
)

// Middleware ограничивает запросы по пользователю, а если его нет в контексте,
// то по адресу клиента.
func Middleware(log handlerLogger, burst int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiterKey(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if template, err := cur.GetPathTemplate(); err == nil {
					route = template
				}
			}

			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("key", key),
			)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(`{"error":"rate limit exceeded"}`)); err != nil {
				log.Error("write rate limit response", logger.NewField("error", err))
			}
		})
	}
}

func limiterKey(r *http.Request) string {
	if caller, ok := auth.CallerFromContext(r.Context()); ok {
		return "caller:" + caller.ID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}
