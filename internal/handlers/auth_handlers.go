// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/dtos"
	"github.com/iyunix/go-chatbot/internal/middleware"
	"github.com/iyunix/go-chatbot/internal/services/user_services"
)

type AuthHandler struct {
	authService *user_services.AuthService
	logger      Logger
}

func NewAuthHandler(authService *user_services.AuthService, logger Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignupRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.AuthResponseDTO{
		Success: true,
		Token:   result.Session.Token,
		User:    dtos.ToUserResponse(result.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		// Missing fields read as bad credentials, not a malformed request.
		if apperr.Is(err, apperr.KindValidation) && strings.HasSuffix(apperr.MessageOf(err), "is required") {
			err = apperr.Auth("login", "Invalid email or password")
		}
		writeAppError(w, r, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.AuthResponseDTO{
		Success: true,
		Token:   result.Session.Token,
		User:    dtos.ToUserResponse(result.User),
	})
}

// Logout takes the token from the query string, a JSON body or the
// Authorization header, in that order.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := logoutToken(w, r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.SuccessResponseDTO{Success: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, dtos.MeResponseDTO{User: dtos.ToUserResponse(user)})
}

func logoutToken(w http.ResponseWriter, r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}

	if r.Body != nil {
		var body dtos.LogoutRequestDTO
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&body); err == nil {
			if token := strings.TrimSpace(body.Token); token != "" {
				return token
			}
		}
	}

	return middleware.BearerToken(r)
}
