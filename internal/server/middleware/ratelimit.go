package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/lunchsync/internal/ratelimit"
	"github.com/iudanet/lunchsync/pkg/api"
)

// RateLimitMiddleware создает middleware для ограничения частоты запросов.
// Использует тот же sliding-window limiter, что и клиент, с ключом по IP.
func RateLimitMiddleware(limiter *ratelimit.Limiter, maxAttempts int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip_" + getClientIP(r)

			// Check перед Record: заблокированный запрос не сжигает попытку
			res := limiter.Check(key, maxAttempts, window)
			if res.Limited {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
					"retry_after", res.RetryAfter,
				)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{
					Code:    api.CodeRateLimited,
					Message: ratelimit.Message(res.RetryAfter),
				})
				return
			}

			limiter.Record(key, maxAttempts, window)
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса.
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Берем первый IP из списка (реальный клиент)
		for idx := 0; idx < len(xff); idx++ {
			if xff[idx] == ',' {
				return xff[:idx]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
