// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"strings"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/auth"
	"github.com/iyunix/go-chatbot/internal/domain"
	"github.com/iyunix/go-chatbot/internal/repository/user"
)

const invalidCredentials = "Invalid email or password"

// AuthResult is returned by signup and login.
type AuthResult struct {
	User    *domain.User
	Session *domain.Session
}

type AuthService struct {
	userRepo  user.UserRepository
	sessions  *SessionService
	hasher    *auth.PasswordHasher
	logger    Logger
	dummyHash string
}

func NewAuthService(userRepo user.UserRepository, sessions *SessionService, hasher *auth.PasswordHasher, logger Logger) (*AuthService, error) {
	// Unknown emails are verified against this hash so both login failures
	// take the same time.
	dummy, err := hasher.Hash("unused-password-for-timing")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		userRepo:  userRepo,
		sessions:  sessions,
		hasher:    hasher,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Signup registers a user and opens their first session.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.Validation("signup", "Email and password are required")
	}

	s.logger.Info("user signup attempt", "email", maskEmail(email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Warn("signup failed - email already registered", "email", maskEmail(email))
		return nil, apperr.Conflict("signup", "Email already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperr.Validation("signup", "Password must be at most 72 bytes")
		}
		return nil, apperr.Internal("signup", "failed to hash password", err)
	}

	// The unique index is the last word when two signups race past ExistsByEmail.
	created, err := s.userRepo.Create(ctx, &domain.User{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		if !apperr.Is(err, apperr.KindConflict) {
			s.logger.Error("user creation failed", "email", maskEmail(email), "error", err)
		}
		return nil, err
	}

	sess, err := s.sessions.CreateSession(ctx, created.ID)
	if err != nil {
		s.logger.Error("session creation after signup failed", "user_id", created.ID, "error", err)
		return nil, err
	}

	s.logger.Info("user registered successfully", "user_id", created.ID, "email", maskEmail(email))
	return &AuthResult{User: created, Session: sess}, nil
}

// Login checks credentials and opens a new session. Earlier sessions of the
// same user stay valid.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Auth("login", invalidCredentials)
	}

	found, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.logger.Warn("login failed - user not found", "email", maskEmail(email))
			return nil, apperr.Auth("login", invalidCredentials)
		}
		return nil, err
	}

	if !s.hasher.Verify(password, found.PasswordHash) {
		s.logger.Warn("login failed - invalid password", "user_id", found.ID)
		return nil, apperr.Auth("login", invalidCredentials)
	}

	sess, err := s.sessions.CreateSession(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login successful", "user_id", found.ID)
	return &AuthResult{User: found, Session: sess}, nil
}

// Logout revokes token. It succeeds whether or not the token exists.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.RevokeSession(ctx, token); err != nil {
		s.logger.Error("logout failed", "error", err)
		return err
	}
	return nil
}

// CurrentUser resolves token or fails with an auth error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	u, err := s.sessions.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Auth("current_user", "Not authenticated")
	}
	return u, nil
}
