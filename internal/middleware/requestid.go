package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation ID. A proxy in front of the portal
// may set it; otherwise the portal mints one per request.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with a correlation ID, reusing the incoming
// header when present and minting a UUID when not. The ID is echoed on the
// response and kept in the context so log lines can reference it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request's correlation ID, or "" when the
// middleware did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
