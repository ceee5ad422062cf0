package category

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const tableName = "categories"

var columns = []any{"id", "name", "type", "parent_category_id", "color_code", "created_at"}

type row struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Type      int16           `db:"type"`
	ParentID  null.Val[int64] `db:"parent_category_id"`
	ColorCode string          `db:"color_code"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r row) toCategory() *Category {
	return &Category{
		ID:        r.ID,
		Name:      r.Name,
		Type:      CategoryType(r.Type),
		ParentID:  r.ParentID.Ptr(),
		ColorCode: r.ColorCode,
		CreatedAt: r.CreatedAt,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	found, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "category", id)
	}
	return found.toCategory(), nil
}

func (r *Reader) FindByName(ctx context.Context, name string) (*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)
	found, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "category", name)
	}
	return found.toCategory(), nil
}

func (r *Reader) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.FindByID(ctx, id)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reader) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("id")).Asc(),
	}
	if filter != nil {
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(int16(*filter.Type)))))
		}
		if filter.ParentID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("parent_category_id").EQ(psql.Arg(*filter.ParentID))))
		}
		if filter.TopLevelOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("parent_category_id").IsNull()))
		}
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, len(rows))
	for i, found := range rows {
		result[i] = found.toCategory()
	}
	return result, nil
}
