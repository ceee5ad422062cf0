package transaction

import (
	"context"

	"github.com/aarondl/opt/null"
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

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	q := psql.Insert(
		im.Into(tableName,
			"account_id", "category_id", "amount", "transaction_type", "transaction_date",
			"description", "notes", "transfer_reference_id", "transfer_direction",
		),
		im.Values(
			psql.Arg(create.AccountID),
			psql.Arg(create.CategoryID),
			psql.Arg(create.Amount),
			psql.Arg(int16(create.Type)),
			psql.Arg(create.Date),
			psql.Arg(create.Description),
			psql.Arg(create.Notes),
			psql.Arg(null.FromCond(create.TransferReferenceID, create.TransferReferenceID != "")),
			psql.Arg(null.FromCond(int16(create.TransferDirection), create.TransferDirection != TransferDirectionNone)),
		),
		im.Returning(columns...),
	)

	created, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "transaction", nil)
	}
	return created.toTransaction(), nil
}

func (w *Writer) Update(ctx context.Context, id int64, update *TransactionUpdate) (*Transaction, error) {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("account_id").ToArg(update.AccountID),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("transaction_type").ToArg(int16(update.Type)),
		um.SetCol("transaction_date").ToArg(update.Date),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("notes").ToArg(update.Notes),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	updated, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "transaction", id)
	}
	return updated.toTransaction(), nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return sqlconfig.MapError(err, "transaction", id)
}
