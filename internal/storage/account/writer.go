package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
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

func (w *Writer) FindByIDForUpdate(ctx context.Context, id int64) (*Account, error) {
	return w.findByID(ctx, id, true)
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(tableName, "account_name", "account_type", "starting_balance", "current_balance", "is_active"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(int16(create.Type)),
			psql.Arg(create.StartingBalance),
			psql.Arg(create.StartingBalance),
			psql.Arg(create.IsActive),
		),
		im.Returning(columns...),
	)

	created, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "account", nil)
	}
	return created.toAccount(), nil
}

func (w *Writer) Update(ctx context.Context, id int64, update *AccountUpdate) (*Account, error) {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("account_name").ToArg(update.Name),
		um.SetCol("account_type").ToArg(int16(update.Type)),
		um.SetCol("is_active").ToArg(update.IsActive),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	updated, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "account", id)
	}
	return updated.toAccount(), nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("current_balance").ToArg(balance),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return sqlconfig.MapError(err, "account", id)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("account %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NotFound("account", id)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return sqlconfig.MapError(err, "account", id)
}
