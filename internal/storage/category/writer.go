package category

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

func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	q := psql.Insert(
		im.Into(tableName, "name", "type", "parent_category_id", "color_code"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(int16(create.Type)),
			psql.Arg(null.FromPtr(create.ParentID)),
			psql.Arg(create.ColorCode),
		),
		im.Returning(columns...),
	)

	created, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "category", create.Name)
	}
	return created.toCategory(), nil
}

func (w *Writer) Update(ctx context.Context, id int64, update *CategoryUpdate) (*Category, error) {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("type").ToArg(int16(update.Type)),
		um.SetCol("parent_category_id").ToArg(null.FromPtr(update.ParentID)),
		um.SetCol("color_code").ToArg(update.ColorCode),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	updated, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "category", id)
	}
	return updated.toCategory(), nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return sqlconfig.MapError(err, "category", id)
}
