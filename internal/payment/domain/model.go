package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the payment settlement state. The only legal transitions are
// pending to approved and pending to rejected; terminal states never move.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// CanTransitionTo reports whether moving to next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

// ParseStatus normalizes a status label.
func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// Method is the payment instrument.
type Method string

const (
	MethodCash         Method = "cash"
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodOnline       Method = "online"
	MethodOther        Method = "other"
)

// ParseMethod normalizes a method label; empty defaults to online.
func ParseMethod(value string) (Method, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return MethodOnline, true
	}
	switch Method(trimmed) {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodOnline, MethodOther:
		return Method(trimmed), true
	default:
		return "", false
	}
}

// Payment is a settlement attempt against one bill, referenced by the
// bill's public identifier. The bill reference and payment date are
// immutable after creation; only the status field ever changes.
type Payment struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	BillID        string       `json:"bill_id" gorm:"type:text;not null;index"`
	Amount        float64      `json:"amount" gorm:"not null"`
	PaymentMethod Method       `json:"payment_method" gorm:"type:text;not null;index"`
	Status        Status       `json:"status" gorm:"type:text;not null;index"`
	Reference     string       `json:"reference" gorm:"type:text;not null"`
	PaymentDate   time.Time    `json:"payment_date" gorm:"not null"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payment" }
