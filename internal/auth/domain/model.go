// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the access role attached to a user profile.
type Role string

const (
	RoleUser    Role = "user"
	RoleUtility Role = "utility"
	RoleAdmin   Role = "admin"
)

// User represents a system user account.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Username     string       `gorm:"type:text;not null;uniqueIndex"`
	Email        string       `gorm:"type:text;index"`
	PasswordHash string       `gorm:"type:text;not null"`
	FirstName    string       `gorm:"type:text"`
	LastName     string       `gorm:"type:text"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// UserProfile carries the bill-tracking profile for one user.
type UserProfile struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;uniqueIndex"`
	FullName  string       `gorm:"type:text"`
	Email     string       `gorm:"type:text"`
	Role      Role         `gorm:"type:text;not null;default:user"`
	Phone     string       `gorm:"type:text"`
	Address   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (UserProfile) TableName() string { return "user_profile" }

// Session represents a persisted login session. Tokens are stored hashed.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"not null;index"`
	SessionTokenHash string       `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt        time.Time    `gorm:"not null;index"`
	RevokedAt        *time.Time
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
