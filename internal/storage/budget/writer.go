package budget

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, categoryID int64, amount decimal.Decimal) (*Allocation, error) {
	q := psql.Insert(
		im.Into(tableName, "category_id", "allocated_amount"),
		im.Values(psql.Arg(categoryID), psql.Arg(amount)),
		im.Returning(columns...),
	)
	created, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "budget allocation", nil)
	}
	return created.toAllocation(), nil
}

func (w *Writer) UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*Allocation, error) {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("allocated_amount").ToArg(amount),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	updated, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "budget allocation", id)
	}
	return updated.toAllocation(), nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return sqlconfig.MapError(err, "budget allocation", id)
}
