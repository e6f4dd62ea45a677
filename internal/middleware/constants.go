// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	UserKey      contextKey = "user"
	RequestIDKey contextKey = "request_id"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Logger is the subset of the service logger used by middleware.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
