package models

import "time"

// Group is a named chat room. Every group has at least one membership, its creator's.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}
