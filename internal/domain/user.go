// File: internal/domain/user.go
package domain

import "time"

// User is an account holder. Email is unique and compared exactly as stored.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"size:200" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}
