package transaction

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const tableName = "transactions"

var columns = []any{
	"id", "account_id", "category_id", "amount", "transaction_type", "transaction_date",
	"description", "notes", "transfer_reference_id", "transfer_direction", "created_at", "updated_at",
}

type row struct {
	ID                  int64            `db:"id"`
	AccountID           int64            `db:"account_id"`
	CategoryID          int64            `db:"category_id"`
	Amount              decimal.Decimal  `db:"amount"`
	Type                int16            `db:"transaction_type"`
	Date                civil.Date       `db:"transaction_date"`
	Description         string           `db:"description"`
	Notes               string           `db:"notes"`
	TransferReferenceID null.Val[string] `db:"transfer_reference_id"`
	TransferDirection   null.Val[int16]  `db:"transfer_direction"`
	CreatedAt           time.Time        `db:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at"`
}

func (r row) toTransaction() *Transaction {
	return &Transaction{
		ID:                  r.ID,
		AccountID:           r.AccountID,
		CategoryID:          r.CategoryID,
		Amount:              r.Amount,
		Type:                TransactionType(r.Type),
		Date:                r.Date,
		Description:         r.Description,
		Notes:               r.Notes,
		TransferReferenceID: r.TransferReferenceID.GetOrZero(),
		TransferDirection:   TransferDirection(r.TransferDirection.GetOrZero()),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

type totalRow struct {
	CategoryID int64           `db:"category_id"`
	Total      decimal.Decimal `db:"total"`
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	found, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.MapError(err, "transaction", id)
	}
	return found.toTransaction(), nil
}

func (r *Reader) List(ctx context.Context, filter *TransactionFilter) (*TransactionListResult, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	}
	if filter.AccountID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
	}
	if filter.CategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(int16(*filter.Type)))))
	}
	if filter.StartDate != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.StartDate))))
	}
	if filter.EndDate != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(*filter.EndDate))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1), sm.Offset(filter.Offset))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	var nextCursor *TransactionCursor
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
		nextCursor = &TransactionCursor{
			Position: filter.Offset + filter.Limit,
			Limit:    filter.Limit,
		}
	}

	result := make([]*Transaction, len(rows))
	for i, found := range rows {
		result[i] = found.toTransaction()
	}
	return &TransactionListResult{Transactions: result, NextCursor: nextCursor}, nil
}

// FindByTransferReference returns both legs of a transfer, outgoing leg first.
func (r *Reader) FindByTransferReference(ctx context.Context, referenceID string) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("transfer_reference_id").EQ(psql.Arg(referenceID))),
		sm.OrderBy(psql.Quote("transfer_direction")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i, found := range rows {
		result[i] = found.toTransaction()
	}
	return result, nil
}

func (r *Reader) SumByCategory(ctx context.Context, filter *SumFilter) ([]*CategoryTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("category_id", "SUM(amount) AS total"),
		sm.From(tableName),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(filter.StartDate))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(filter.EndDate))),
		sm.GroupBy("category_id"),
		sm.OrderBy("category_id").Asc(),
	}
	if filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(int16(*filter.Type)))))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[totalRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*CategoryTotal, len(rows))
	for i, total := range rows {
		result[i] = &CategoryTotal{CategoryID: total.CategoryID, Total: total.Total}
	}
	return result, nil
}
