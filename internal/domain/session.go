// File: internal/domain/session.go
package domain

import "time"

// Session is an opaque bearer credential bound to a user until ExpiresAt.
type Session struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token     string    `gorm:"uniqueIndex;not null;size:64"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// IsActive reports whether the session still authenticates at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
