// File: internal/domain/message.go
package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

func (s Sender) String() string {
	return string(s)
}

// ParseSender converts a stored or wire value into a Sender.
func ParseSender(v string) (Sender, error) {
	s := Sender(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown message sender %q", v)
	}
	return s, nil
}

// Value implements driver.Valuer so invalid senders never reach the database.
func (s Sender) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown message sender %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Sender) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Sender", src)
	}
	parsed, err := ParseSender(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Message represents a single message within a chat.
type Message struct {
	ID        uint      `gorm:"primarykey"`
	ChatID    uint      `gorm:"not null;index:idx_messages_chat_order,priority:1"`
	Sender    Sender    `gorm:"type:varchar(8);not null"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_chat_order,priority:2"`
}
