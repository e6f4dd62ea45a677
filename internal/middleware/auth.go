package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-chatbot/internal/domain"
)

// SessionResolver maps a bearer token to its user; (nil, nil) means unauthenticated.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

// NewSessionMiddleware rejects requests without a live session and stores the
// resolved user in the request context.
func NewSessionMiddleware(resolver SessionResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeDetail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			user, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				logger.Error("session lookup failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
				writeDetail(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				writeDetail(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserFromContext returns the user stored by the session middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
