package repository

import (
	"context"
	"strings"

	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() billdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *billdomain.GeneratedBill) error {
	return db.WithContext(ctx).Create(bill).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter billdomain.ListFilter) ([]billdomain.GeneratedBill, error) {
	query := db.WithContext(ctx).Model(&billdomain.GeneratedBill{})
	if filter.UtilityType != "" {
		query = query.Where("LOWER(utility_type) = ?", strings.ToLower(filter.UtilityType))
	}
	if filter.ProviderName != "" {
		query = query.Where("LOWER(provider_name) = ?", strings.ToLower(filter.ProviderName))
	}
	if filter.ConsumerNumber != "" {
		query = query.Where("consumer_number = ?", filter.ConsumerNumber)
	}
	if filter.WaterConnectionNumber != "" {
		query = query.Where("water_connection_number = ?", filter.WaterConnectionNumber)
	}
	if filter.GasConsumerID != "" {
		query = query.Where("gas_consumer_id = ?", filter.GasConsumerID)
	}
	if filter.WifiConsumerID != "" {
		query = query.Where("wifi_consumer_id = ?", filter.WifiConsumerID)
	}
	if filter.DthSubscriberID != "" {
		query = query.Where("dth_subscriber_id = ?", filter.DthSubscriberID)
	}

	var bills []billdomain.GeneratedBill
	if err := query.Order("created_at DESC").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) FindLatestReading(ctx context.Context, db *gorm.DB, utilityType string, field billdomain.IdentifierField, value string) (*billdomain.GeneratedBill, error) {
	column, ok := identifierColumn(field)
	if !ok {
		return nil, billdomain.ErrMissingIdentifier
	}

	var bill billdomain.GeneratedBill
	err := db.WithContext(ctx).
		Where("LOWER(utility_type) = ?", strings.ToLower(utilityType)).
		Where(column+" = ?", value).
		Order("reading_date DESC").
		Order("created_at DESC").
		Take(&bill).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *repo) InsertSimplified(ctx context.Context, db *gorm.DB, bill *billdomain.UtilityBill) error {
	return db.WithContext(ctx).Create(bill).Error
}

func (r *repo) ListSimplified(ctx context.Context, db *gorm.DB, filter billdomain.SimplifiedListFilter) ([]billdomain.UtilityBill, error) {
	query := db.WithContext(ctx).Model(&billdomain.UtilityBill{})
	if filter.UtilityType != "" {
		query = query.Where("LOWER(utility_type) = ?", strings.ToLower(filter.UtilityType))
	}
	if filter.BillID != "" {
		query = query.Where("bill_id = ?", filter.BillID)
	}

	var bills []billdomain.UtilityBill
	if err := query.Order("created_at DESC").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) FindSimplifiedByBillID(ctx context.Context, db *gorm.DB, billID string) (*billdomain.UtilityBill, error) {
	var bill billdomain.UtilityBill
	err := db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at DESC").
		Take(&bill).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// identifierColumn maps a classified identifier field to its column. The
// switch keeps identifier values out of SQL string construction.
func identifierColumn(field billdomain.IdentifierField) (string, bool) {
	switch field {
	case billdomain.FieldConsumerNumber:
		return "consumer_number", true
	case billdomain.FieldWaterConnectionNumber:
		return "water_connection_number", true
	case billdomain.FieldGasConsumerID:
		return "gas_consumer_id", true
	case billdomain.FieldWifiConsumerID:
		return "wifi_consumer_id", true
	case billdomain.FieldDthSubscriberID:
		return "dth_subscriber_id", true
	default:
		return "", false
	}
}
