package models

import "time"

// User is a registered chat participant. Users are immutable once created.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"` // Bearer credential, issued once at registration
	CreatedAt time.Time `json:"created_at"`
}
