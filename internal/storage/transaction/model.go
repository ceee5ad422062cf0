package transaction

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction represents a ledger entry against a single account.
type Transaction struct {
	ID                  int64
	AccountID           int64
	CategoryID          int64
	Amount              decimal.Decimal
	Type                TransactionType
	Date                civil.Date
	Description         string
	Notes               string
	TransferReferenceID string
	TransferDirection   TransferDirection
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsTransferLeg reports whether the transaction is one half of a transfer pair.
func (t *Transaction) IsTransferLeg() bool {
	return t.Type == TransactionTypeTransfer && t.TransferReferenceID != ""
}

// TransactionFilter specifies filters for listing transactions. A zero Limit returns every match.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       *TransactionType
	StartDate  *civil.Date
	EndDate    *civil.Date
	Limit      int
	Offset     int
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

// TransactionListResult contains a page of transactions and an optional next cursor.
type TransactionListResult struct {
	Transactions []*Transaction
	NextCursor   *TransactionCursor
}

// TransactionCreate is the input for inserting a transaction row.
type TransactionCreate struct {
	AccountID           int64
	CategoryID          int64
	Amount              decimal.Decimal
	Type                TransactionType
	Date                civil.Date
	Description         string
	Notes               string
	TransferReferenceID string
	TransferDirection   TransferDirection
}

// TransactionUpdate replaces the mutable fields of a non-transfer transaction.
type TransactionUpdate struct {
	AccountID   int64
	CategoryID  int64
	Amount      decimal.Decimal
	Type        TransactionType
	Date        civil.Date
	Description string
	Notes       string
}

// SumFilter bounds a per-category aggregation. StartDate and EndDate are inclusive.
type SumFilter struct {
	StartDate civil.Date
	EndDate   civil.Date
	Type      *TransactionType
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	CategoryID int64
	Total      decimal.Decimal
}

type IReader interface {
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) (*TransactionListResult, error)
	FindByTransferReference(ctx context.Context, referenceID string) ([]*Transaction, error)
	// SumByCategory returns totals ordered by category id; categories without matches are absent.
	SumByCategory(ctx context.Context, filter *SumFilter) ([]*CategoryTotal, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id int64, update *TransactionUpdate) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionType int8

const (
	TransactionTypeExpense TransactionType = iota
	TransactionTypeIncome
	TransactionTypeTransfer
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeExpense:  "expense",
	TransactionTypeIncome:   "income",
	TransactionTypeTransfer: "transfer",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func ParseTransactionType(name string) (TransactionType, bool) {
	for t, n := range transactionTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// TransferDirection marks which side of a transfer a leg records.
type TransferDirection int8

const (
	TransferDirectionNone TransferDirection = iota
	TransferDirectionOut
	TransferDirectionIn
)

func (d TransferDirection) String() string {
	switch d {
	case TransferDirectionOut:
		return "out"
	case TransferDirectionIn:
		return "in"
	default:
		return ""
	}
}
