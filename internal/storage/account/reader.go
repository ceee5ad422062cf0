package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const tableName = "accounts"

var columns = []any{
	"id", "account_name", "account_type", "starting_balance",
	"current_balance", "is_active", "created_at", "updated_at",
}

type row struct {
	ID              int64           `db:"id"`
	Name            string          `db:"account_name"`
	Type            int16           `db:"account_type"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	IsActive        bool            `db:"is_active"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r row) toAccount() *Account {
	return &Account{
		ID:              r.ID,
		Name:            r.Name,
		Type:            AccountType(r.Type),
		Balance:         r.CurrentBalance,
		StartingBalance: r.StartingBalance,
		IsActive:        r.IsActive,
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

func (r *Reader) FindByID(ctx context.Context, id int64) (*Account, error) {
	return r.findByID(ctx, id, false)
}

func (r *Reader) findByID(ctx context.Context, id int64, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	found, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "account", id)
	}
	return found.toAccount(), nil
}

func (r *Reader) List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error) {
	if filter == nil {
		filter = &AccountFilter{}
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("id")).Asc(),
	}
	if filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("account_type").EQ(psql.Arg(int16(*filter.Type)))))
	}
	if filter.ActiveOnly {
		queryMods = append(queryMods, sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1), sm.Offset(filter.Offset))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	var nextCursor *AccountCursor
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
		nextCursor = &AccountCursor{
			Position: filter.Offset + filter.Limit,
			Limit:    filter.Limit,
		}
	}

	result := make([]*Account, len(rows))
	for i, found := range rows {
		result[i] = found.toAccount()
	}
	return &AccountListResult{Accounts: result, NextCursor: nextCursor}, nil
}
