package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	LastReading(ctx context.Context, req LastReadingRequest) (*LastReadingResponse, error)
	CreateSimplified(ctx context.Context, req CreateSimplifiedRequest) (*SimplifiedResponse, error)
	ListSimplified(ctx context.Context, req ListSimplifiedRequest) ([]SimplifiedResponse, error)
}

type CreateRequest struct {
	BillID       string `json:"bill_id"`
	UtilityType  string `json:"utility_type"`
	ProviderName string `json:"provider_name"`
	ConsumerName string `json:"consumer_name"`

	ConsumerNumber        string `json:"consumer_number"`
	WaterConnectionNumber string `json:"water_connection_number"`
	GasConsumerID         string `json:"gas_consumer_id"`
	WifiConsumerID        string `json:"wifi_consumer_id"`
	DthSubscriberID       string `json:"dth_subscriber_id"`

	PlanName             string `json:"plan_name"`
	DthPackageName       string `json:"dth_package_name"`
	SpecifiedUtilityType string `json:"specified_utility_type"`

	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading"`
	UnitsConsumed   *float64 `json:"units_consumed"`
	RatePerUnit     *float64 `json:"rate_per_unit"`
	TotalAmount     *float64 `json:"total_amount"`

	ReadingDate string `json:"reading_date"`
	DueDate     string `json:"due_date"`
}

type ListRequest struct {
	UtilityType           string
	ProviderName          string
	ConsumerNumber        string
	WaterConnectionNumber string
	GasConsumerID         string
	WifiConsumerID        string
	DthSubscriberID       string
}

type LastReadingRequest struct {
	UtilityType string
	Identifiers IdentifierValues
}

// LastReadingResponse distinguishes "no prior reading" (nil) from a
// reading of zero.
type LastReadingResponse struct {
	CurrentReading *float64 `json:"current_reading"`
}

type Response struct {
	ID           string `json:"id"`
	BillID       string `json:"bill_id"`
	UtilityType  string `json:"utility_type"`
	ProviderName string `json:"provider_name"`
	ConsumerName string `json:"consumer_name"`

	ConsumerNumber        string `json:"consumer_number"`
	WaterConnectionNumber string `json:"water_connection_number"`
	GasConsumerID         string `json:"gas_consumer_id"`
	WifiConsumerID        string `json:"wifi_consumer_id"`
	DthSubscriberID       string `json:"dth_subscriber_id"`

	PlanName             string `json:"plan_name"`
	DthPackageName       string `json:"dth_package_name"`
	SpecifiedUtilityType string `json:"specified_utility_type"`

	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading"`
	UnitsConsumed   *float64 `json:"units_consumed"`
	RatePerUnit     *float64 `json:"rate_per_unit"`
	TotalAmount     *float64 `json:"total_amount"`

	ReadingDate string    `json:"reading_date"`
	DueDate     string    `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateSimplifiedRequest struct {
	UtilityType     string   `json:"utility_type"`
	BillID          string   `json:"bill_id"`
	ConsumerName    string   `json:"consumer_name"`
	ConsumerID      string   `json:"consumer_id"`
	PreviousReading *float64 `json:"previous_reading"`
	CurrentReading  *float64 `json:"current_reading"`
	TotalAmount     *float64 `json:"total_amount"`
}

type ListSimplifiedRequest struct {
	UtilityType string
	BillID      string
}

type SimplifiedResponse struct {
	ID              string    `json:"id"`
	UtilityType     string    `json:"utility_type"`
	BillID          string    `json:"bill_id"`
	ConsumerName    string    `json:"consumer_name"`
	ConsumerID      string    `json:"consumer_id"`
	PreviousReading *float64  `json:"previous_reading"`
	CurrentReading  *float64  `json:"current_reading"`
	TotalAmount     *float64  `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

var (
	ErrInvalidBillID      = errors.New("invalid_bill_id")
	ErrInvalidUtilityType = errors.New("invalid_utility_type")
	ErrInvalidReadingDate = errors.New("invalid_reading_date")
	ErrInvalidDueDate     = errors.New("invalid_due_date")
	ErrNegativeReading    = errors.New("invalid_reading")
	ErrReadingRegression  = errors.New("invalid_reading_regression")
	ErrNegativeAmount     = errors.New("invalid_amount")
	ErrMissingIdentifier  = errors.New("missing_identifier")
	ErrBillExists         = errors.New("bill_exists")
)

// DateLayout is the wire format for reading and due dates.
const DateLayout = "2006-01-02"
