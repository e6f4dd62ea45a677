package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iyunix/go-chatbot/internal/apperr"
	"github.com/iyunix/go-chatbot/internal/database"
	"github.com/iyunix/go-chatbot/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts user. A duplicate email surfaces as a conflict even when two
// signups race past the service-level existence check.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, apperr.Validation("create_user", "user cannot be nil")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("create_user", "Email already registered")
		}
		return nil, apperr.Internal("create_user", "database error creating user", err)
	}
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "find_user_by_id")
}

// FindByEmail matches the address exactly as stored.
func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, ErrUserNotFound
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "find_user_by_email")
}

func (r *gormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("exists_by_email", "database error checking email", err)
	}
	return count > 0, nil
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return nil, apperr.Internal(operation, "database query failed", err)
}
