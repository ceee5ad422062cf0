package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const tableName = "budget_allocations"

var columns = []any{"id", "category_id", "allocated_amount", "created_at", "updated_at"}

type row struct {
	ID              int64           `db:"id"`
	CategoryID      int64           `db:"category_id"`
	AllocatedAmount decimal.Decimal `db:"allocated_amount"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r row) toAllocation() *Allocation {
	return &Allocation{
		ID:              r.ID,
		CategoryID:      r.CategoryID,
		AllocatedAmount: r.AllocatedAmount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Allocation, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	found, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "budget allocation", id)
	}
	return found.toAllocation(), nil
}

func (r *Reader) FindByCategoryID(ctx context.Context, categoryID int64) (*Allocation, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	found, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "budget allocation for category", categoryID)
	}
	return found.toAllocation(), nil
}

func (r *Reader) List(ctx context.Context) ([]*Allocation, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Allocation, len(rows))
	for i, found := range rows {
		result[i] = found.toAllocation()
	}
	return result, nil
}
