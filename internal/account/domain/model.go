package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// UtilityAccount is a user's registered subscription to one utility service.
// Accounts are matched to bills by identifier value and utility type, never
// by foreign key; an account may exist without any bill and vice versa.
type UtilityAccount struct {
	ID                    snowflake.ID  `json:"id" gorm:"primaryKey"`
	UserID                *snowflake.ID `json:"user_id" gorm:"index"`
	UserName              string        `json:"user_name" gorm:"type:text;index"`
	UtilityType           string        `json:"utility_type" gorm:"type:text;not null;index"`
	ProviderName          string        `json:"provider_name" gorm:"type:text"`
	ConsumerNumber        string        `json:"consumer_number" gorm:"type:text"`
	WaterConnectionNumber string        `json:"water_connection_number" gorm:"type:text"`
	GasConnectionNumber   string        `json:"gas_connection_number" gorm:"type:text"`
	WifiConsumerID        string        `json:"wifi_consumer_id" gorm:"type:text"`
	DthSubscriberID       string        `json:"dth_subscriber_id" gorm:"type:text"`
	MeterNumber           string        `json:"meter_number" gorm:"type:text"`
	ConnectionType        string        `json:"connection_type" gorm:"type:text"`
	PlanName              string        `json:"plan_name" gorm:"type:text"`
	IsActive              bool          `json:"is_active" gorm:"not null;default:true"`
	CreatedAt             time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (UtilityAccount) TableName() string { return "user_utility" }
