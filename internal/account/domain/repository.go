package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows account listings. Zero values mean "no filter".
type ListFilter struct {
	UserName     string
	ProviderName string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *UtilityAccount) error
	Update(ctx context.Context, db *gorm.DB, account *UtilityAccount) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*UtilityAccount, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]UtilityAccount, error)
	CountByProvider(ctx context.Context, db *gorm.DB, providerName string) (int64, error)
}
