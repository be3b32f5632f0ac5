package models

import "time"

// GroupMembership records that a user belongs to a group.
// The composite primary key allows at most one row per (group, user) pair.
type GroupMembership struct {
	GroupID  uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	Group *Group `gorm:"foreignKey:GroupID" json:"-"`
	User  *User  `gorm:"foreignKey:UserID" json:"-"`
}

// TableName keeps the table name used by earlier deployments.
func (GroupMembership) TableName() string {
	return "group_members"
}

// Member is a group member as shown in a group's member list.
type Member struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
