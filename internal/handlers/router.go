// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-chatbot/internal/middleware"
)

// RouterDeps holds what NewRouter wires together.
type RouterDeps struct {
	Auth     *AuthHandler
	Chat     *ChatHandler
	Sessions middleware.SessionResolver
	Logger   Logger
}

// NewRouter builds the full HTTP surface. Only /auth/me requires a session.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", deps.Auth.Signup).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", deps.Auth.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/logout", deps.Auth.Logout).Methods(http.MethodPost)

	requireSession := middleware.NewSessionMiddleware(deps.Sessions, deps.Logger)
	authRouter.Handle("/me", requireSession(http.HandlerFunc(deps.Auth.Me))).Methods(http.MethodGet)

	r.HandleFunc("/", deps.Chat.Home).Methods(http.MethodGet)
	r.HandleFunc("/new_chat", deps.Chat.NewChat).Methods(http.MethodGet)
	r.HandleFunc("/chat/{id}", deps.Chat.ViewChat).Methods(http.MethodGet)
	r.HandleFunc("/chat/{id}", deps.Chat.DeleteChat).Methods(http.MethodDelete)
	r.HandleFunc("/chat/{id}/title", deps.Chat.RenameChat).Methods(http.MethodPut)
	r.HandleFunc("/send/{id}", deps.Chat.SendMessage).Methods(http.MethodPost)

	// CORS is outermost so preflight requests never reach the router.
	var handler http.Handler = r
	handler = middleware.NewRecoverPanic(deps.Logger)(handler)
	handler = middleware.NewLoggingMiddleware(deps.Logger)(handler)
	handler = middleware.CORS(handler)
	return handler
}
