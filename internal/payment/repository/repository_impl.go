package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *paymentdomain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&payment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter paymentdomain.ListFilter) ([]paymentdomain.Payment, error) {
	query := db.WithContext(ctx).Model(&paymentdomain.Payment{})
	if filter.BillID != "" {
		query = query.Where("bill_id = ?", filter.BillID)
	}
	if filter.Status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(string(filter.Status)))
	}

	var payments []paymentdomain.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) SettleIfPending(ctx context.Context, db *gorm.DB, id snowflake.ID, status paymentdomain.Status) (bool, error) {
	result := db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Where("id = ? AND status = ?", id, paymentdomain.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
