// Package seed bootstraps baseline records at startup.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	"github.com/utilitydesk/meterbill/internal/auth/password"
	"github.com/utilitydesk/meterbill/internal/config"
)

// EnsureBootstrapAdmin creates the configured admin account when it does not
// exist yet. It is a no-op when no bootstrap admin is configured.
func EnsureBootstrapAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	username := strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminUsername))
	if username == "" {
		return nil
	}
	if cfg.BootstrapAdminPassword == "" {
		return errors.New("bootstrap admin password is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.WithContext(ctx).Where("username = ?", username).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = authdomain.User{
			ID:           node.Generate(),
			Username:     username,
			PasswordHash: hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}

		profile := authdomain.UserProfile{
			ID:        node.Generate(),
			UserID:    user.ID,
			Role:      authdomain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&profile).Error
	})
}
