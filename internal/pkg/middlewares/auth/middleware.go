package auth

import (
	"net/http"
	"strings"

	"orders/pkg/logger"
)

const bearerPrefix = "Bearer "

// Middleware отклоняет запросы без валидного bearer токена и кладет Caller в контекст.
func Middleware(log handlerLogger, authenticator *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(log, w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			caller, err := authenticator.Authenticate(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				log.Warn("authentication failed",
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				)
				writeError(log, w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// AdminOnly ставить после Middleware.
func AdminOnly(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				writeError(log, w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if !caller.IsAdmin {
				writeError(log, w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(log handlerLogger, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(`{"error":"` + msg + `"}`)); err != nil {
		log.Error("write auth error response", logger.NewField("error", err))
	}
}
