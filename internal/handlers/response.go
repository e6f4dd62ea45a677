// File: internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Logger is the subset of the service logger used by handlers.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError sends the {detail} error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError maps err to its status and client-safe detail. Server-side
// failures are logged with their cause.
func writeAppError(w http.ResponseWriter, r *http.Request, logger Logger, err error) {
	status := statusFor(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}
	writeError(w, status, apperr.MessageOf(err))
}

// decodeJSON reads a bounded JSON body into dst and runs struct validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("decode", "Request body is required")
		case errors.As(err, &maxErr):
			return apperr.Validation("decode", "Request body too large")
		default:
			return apperr.Validation("decode", "Invalid JSON body")
		}
	}

	if err := validate.Struct(dst); err != nil {
		return apperr.Validation("validate", describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
