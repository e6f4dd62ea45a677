// File: internal/domain/chat.go
package domain

import "time"

// Chat represents a single conversation thread. Chats are not owned by a user.
type Chat struct {
	ID        uint      `gorm:"primarykey"`
	Title     string    `gorm:"not null;size:200"`
	CreatedAt time.Time `gorm:"not null;index"`
}
