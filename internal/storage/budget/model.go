package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Allocation is the planned spend for one category. A category has at most one.
type Allocation struct {
	ID              int64
	CategoryID      int64
	AllocatedAmount decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type IReader interface {
	FindByID(ctx context.Context, id int64) (*Allocation, error)
	FindByCategoryID(ctx context.Context, categoryID int64) (*Allocation, error)
	// List returns every allocation ordered by id.
	List(ctx context.Context) ([]*Allocation, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, categoryID int64, amount decimal.Decimal) (*Allocation, error)
	UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*Allocation, error)
	Delete(ctx context.Context, id int64) error
}
