package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows payment listings. Zero values mean "no filter".
type ListFilter struct {
	BillID string
	Status Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Payment, error)
	// SettleIfPending updates the status only when the row is still
	// pending, so concurrent approve/reject races are decided by the
	// storage layer. Returns false when no pending row was updated.
	SettleIfPending(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) (bool, error)
}
