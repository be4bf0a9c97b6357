package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertUser(ctx context.Context, db *gorm.DB, user *User, profile *UserProfile) error
	FindUserByUsername(ctx context.Context, db *gorm.DB, username string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindProfileByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*UserProfile, error)
	ListProfiles(ctx context.Context, db *gorm.DB) ([]UserProfile, error)
	UsernameExists(ctx context.Context, db *gorm.DB, username string) (bool, error)

	InsertSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
