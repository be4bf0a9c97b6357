package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	CountByProvider(ctx context.Context, providerName string) (int64, error)
}

type CreateRequest struct {
	UserID                *string `json:"user_id"`
	UserName              string  `json:"user_name"`
	UtilityType           string  `json:"utility_type"`
	ProviderName          string  `json:"provider_name"`
	ConsumerNumber        string  `json:"consumer_number"`
	WaterConnectionNumber string  `json:"water_connection_number"`
	GasConnectionNumber   string  `json:"gas_connection_number"`
	WifiConsumerID        string  `json:"wifi_consumer_id"`
	DthSubscriberID       string  `json:"dth_subscriber_id"`
	MeterNumber           string  `json:"meter_number"`
	ConnectionType        string  `json:"connection_type"`
	PlanName              string  `json:"plan_name"`
	IsActive              *bool   `json:"is_active"`
}

type ListRequest struct {
	UserName     string
	ProviderName string
}

// UpdateRequest carries a partial field set; nil fields keep the
// stored value.
type UpdateRequest struct {
	ID                    string
	UserName              *string `json:"user_name,omitempty"`
	UtilityType           *string `json:"utility_type,omitempty"`
	ProviderName          *string `json:"provider_name,omitempty"`
	ConsumerNumber        *string `json:"consumer_number,omitempty"`
	WaterConnectionNumber *string `json:"water_connection_number,omitempty"`
	GasConnectionNumber   *string `json:"gas_connection_number,omitempty"`
	WifiConsumerID        *string `json:"wifi_consumer_id,omitempty"`
	DthSubscriberID       *string `json:"dth_subscriber_id,omitempty"`
	MeterNumber           *string `json:"meter_number,omitempty"`
	ConnectionType        *string `json:"connection_type,omitempty"`
	PlanName              *string `json:"plan_name,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`
}

type Response struct {
	ID                    string    `json:"id"`
	UserID                *string   `json:"user_id,omitempty"`
	UserName              string    `json:"user_name"`
	UtilityType           string    `json:"utility_type"`
	ProviderName          string    `json:"provider_name"`
	ConsumerNumber        string    `json:"consumer_number"`
	WaterConnectionNumber string    `json:"water_connection_number"`
	GasConnectionNumber   string    `json:"gas_connection_number"`
	WifiConsumerID        string    `json:"wifi_consumer_id"`
	DthSubscriberID       string    `json:"dth_subscriber_id"`
	MeterNumber           string    `json:"meter_number"`
	ConnectionType        string    `json:"connection_type"`
	PlanName              string    `json:"plan_name"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
}

var (
	ErrInvalidUtilityType = errors.New("invalid_utility_type")
	ErrInvalidProvider    = errors.New("invalid_provider_name")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
