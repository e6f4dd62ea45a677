// File: internal/middleware/recovery.go
package middleware

import (
	"net/http"
	"runtime/debug"
)

// NewRecoverPanic turns a handler panic into a 500 JSON response.
func NewRecoverPanic(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"panic", err,
						"request_id", RequestIDFromContext(r.Context()),
						"stack", string(debug.Stack()))

					w.Header().Set("Connection", "close")
					writeDetail(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
