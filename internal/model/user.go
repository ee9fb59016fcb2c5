package model

import "time"

// User is an account that owns tasks.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	TelegramChatID *int64 `gorm:"index"`
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
