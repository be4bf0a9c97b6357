package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Approve(ctx context.Context, id string) (*SettleResponse, error)
	Reject(ctx context.Context, id string) (*SettleResponse, error)
}

type RecordRequest struct {
	BillID        string   `json:"bill_id"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
}

type ListRequest struct {
	BillID string
	Status string
}

type Response struct {
	ID            string    `json:"id"`
	BillID        string    `json:"bill_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod Method    `json:"payment_method"`
	Status        Status    `json:"status"`
	Reference     string    `json:"reference"`
	PaymentDate   time.Time `json:"payment_date"`
}

type SettleResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

var (
	ErrInvalidBillID = errors.New("invalid_bill_id")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidMethod = errors.New("invalid_payment_method")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrBillNotFound  = errors.New("bill_not_found")
	ErrNotFound      = errors.New("not_found")
	ErrInvalidState  = errors.New("invalid_state")
)
