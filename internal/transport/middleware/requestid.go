package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or mints a UUID, and stores it
// in the context together with a request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		ctx := internal.ContextWithRequestID(r.Context(), requestID)
		ctx = logger.With(ctx, "request_id", requestID)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
