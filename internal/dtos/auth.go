// File: internal/dtos/auth.go
package dtos

import "github.com/iyunix/go-chatbot/internal/domain"

// SignupRequestDTO is the payload of POST /auth/signup.
type SignupRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=200"`
}

// LoginRequestDTO is the payload of POST /auth/login.
type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequestDTO is the optional JSON body of POST /auth/logout.
type LogoutRequestDTO struct {
	Token string `json:"token"`
}

// UserResponseDTO defines what fields to expose in user API responses.
type UserResponseDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponseDTO struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    UserResponseDTO `json:"user"`
}

type MeResponseDTO struct {
	User UserResponseDTO `json:"user"`
}

func ToUserResponse(u *domain.User) UserResponseDTO {
	return UserResponseDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}
