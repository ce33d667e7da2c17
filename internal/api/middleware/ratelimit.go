package middleware

import (
	"net"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/pkg/ratelimit"
)

// RateLimit ограничивает частоту запросов по пользователю (X-User-ID),
// для анонимных запросов по IP. Хранилище счетчиков за интерфейсом,
// чтобы инстансы могли разделять общий стор.
func RateLimit(store ratelimit.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-User-ID")
			if key == "" {
				host, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					host = r.RemoteAddr
				}
				key = host
			}

			if !store.Allow(key) {
				handlers.RespondError(w, http.StatusTooManyRequests,
					handlers.CodeTooManyRequests, "превышен лимит запросов")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
