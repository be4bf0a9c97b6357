package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// GeneratedBill is an immutable record of one billing cycle for one
// account. It is never updated in place; concurrent creates with the same
// bill_id are decided by the unique index, not application locking.
type GeneratedBill struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	BillID       string       `json:"bill_id" gorm:"type:text;not null;uniqueIndex:ux_generated_bill_bill_id"`
	UtilityType  string       `json:"utility_type" gorm:"type:text;not null;index"`
	ProviderName string       `json:"provider_name" gorm:"type:text"`
	ConsumerName string       `json:"consumer_name" gorm:"type:text"`

	ConsumerNumber        string `json:"consumer_number" gorm:"type:text"`
	WaterConnectionNumber string `json:"water_connection_number" gorm:"type:text"`
	GasConsumerID         string `json:"gas_consumer_id" gorm:"type:text"`
	WifiConsumerID        string `json:"wifi_consumer_id" gorm:"type:text"`
	DthSubscriberID       string `json:"dth_subscriber_id" gorm:"type:text"`

	PlanName             string `json:"plan_name" gorm:"type:text"`
	DthPackageName       string `json:"dth_package_name" gorm:"type:text"`
	SpecifiedUtilityType string `json:"specified_utility_type" gorm:"type:text"`

	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading"`
	UnitsConsumed   *float64 `json:"units_consumed"`
	RatePerUnit     *float64 `json:"rate_per_unit"`
	TotalAmount     *float64 `json:"total_amount"`

	ReadingDate time.Time `json:"reading_date" gorm:"not null"`
	DueDate     time.Time `json:"due_date" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (GeneratedBill) TableName() string { return "generated_bill" }

// UtilityBill is the reduced projection of a bill used by lightweight
// reporting flows. Payments reference it by its public bill_id.
type UtilityBill struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	UtilityType     string       `json:"utility_type" gorm:"type:text;not null;index"`
	BillID          string       `json:"bill_id" gorm:"type:text;not null;index"`
	ConsumerName    string       `json:"consumer_name" gorm:"type:text"`
	ConsumerID      string       `json:"consumer_id" gorm:"type:text"`
	PreviousReading *float64     `json:"previous_reading"`
	CurrentReading  *float64     `json:"current_reading"`
	TotalAmount     *float64     `json:"total_amount"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (UtilityBill) TableName() string { return "utility_bill" }
