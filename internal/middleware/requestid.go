package middleware

import (
	"net/http"

	"github.com/oklog/ulid/v2"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a ULID, exposed on the response and in
// the request context for log correlation. An inbound X-Request-ID from a
// trusted proxy is reused as-is.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = ulid.Make().String()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := SetRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
