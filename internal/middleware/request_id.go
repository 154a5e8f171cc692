package middleware

import (
	"net/http"

	"newsroom/internal/reqctx"

	"github.com/google/uuid"
)

// RequestID присваивает каждому запросу идентификатор; берём клиентский
// X-Request-ID, если он есть.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		ctx := reqctx.WithRequestID(r.Context(), rid)
		w.Header().Set("X-Request-ID", rid)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
