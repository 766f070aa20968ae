package storage

import (
	"time"

	"gorm.io/gorm"
)

// User is an account created through registration. Emails are stored lowercased.
type User struct {
	gorm.Model
	FullName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// Structure is a molecule saved by a user. Data holds the JSON document with the
// nodes and bonds exactly as submitted.
type Structure struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Data      []byte `gorm:"type:blob;not null"`
	CreatedAt time.Time
}
