package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() accountdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *accountdomain.UtilityAccount) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, account *accountdomain.UtilityAccount) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&accountdomain.UtilityAccount{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*accountdomain.UtilityAccount, error) {
	var account accountdomain.UtilityAccount
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&account).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter accountdomain.ListFilter) ([]accountdomain.UtilityAccount, error) {
	query := db.WithContext(ctx).Model(&accountdomain.UtilityAccount{})
	if filter.UserName != "" {
		query = query.Where("user_name = ?", filter.UserName)
	}
	if filter.ProviderName != "" {
		query = query.Where("LOWER(provider_name) = ?", strings.ToLower(filter.ProviderName))
	}

	var accounts []accountdomain.UtilityAccount
	if err := query.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repo) CountByProvider(ctx context.Context, db *gorm.DB, providerName string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&accountdomain.UtilityAccount{}).
		Where("LOWER(provider_name) = ?", strings.ToLower(providerName)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
