package domain

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter narrows bill listings. Filters are conjunctive; zero values
// mean "no filter".
type ListFilter struct {
	UtilityType           string
	ProviderName          string
	ConsumerNumber        string
	WaterConnectionNumber string
	GasConsumerID         string
	WifiConsumerID        string
	DthSubscriberID       string
}

// SimplifiedListFilter narrows simplified-bill listings.
type SimplifiedListFilter struct {
	UtilityType string
	BillID      string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *GeneratedBill) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]GeneratedBill, error)
	// FindLatestReading returns the newest bill for the utility type whose
	// resolved identifier column equals value, ordered by reading date then
	// creation time, or nil when no such bill exists.
	FindLatestReading(ctx context.Context, db *gorm.DB, utilityType string, field IdentifierField, value string) (*GeneratedBill, error)

	InsertSimplified(ctx context.Context, db *gorm.DB, bill *UtilityBill) error
	ListSimplified(ctx context.Context, db *gorm.DB, filter SimplifiedListFilter) ([]UtilityBill, error)
	FindSimplifiedByBillID(ctx context.Context, db *gorm.DB, billID string) (*UtilityBill, error)
}
