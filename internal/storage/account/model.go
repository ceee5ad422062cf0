package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents an account record.
type Account struct {
	ID              int64
	Name            string
	Type            AccountType
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AccountFilter specifies filters for listing accounts. A zero Limit returns every match.
type AccountFilter struct {
	Type       *AccountType
	ActiveOnly bool
	Limit      int
	Offset     int
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountListResult contains a page of accounts and an optional next cursor.
type AccountListResult struct {
	Accounts   []*Account
	NextCursor *AccountCursor
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name            string
	Type            AccountType
	StartingBalance decimal.Decimal
	IsActive        bool
}

// AccountUpdate holds the descriptive fields of an account. The balance is
// owned by the reconciler and is never part of an update.
type AccountUpdate struct {
	Name     string
	Type     AccountType
	IsActive bool
}

type IReader interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error)
}

// IWriter is the account store as seen from inside a unit of work.
type IWriter interface {
	IReader
	// FindByIDForUpdate reads the account and holds its row lock until the unit of work ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id int64, update *AccountUpdate) (*Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

type AccountType int8

const (
	AccountTypeSavings AccountType = iota
	AccountTypeChecking
	AccountTypeCreditCard
	AccountTypeFixedDeposit
	AccountTypeCash
)

var accountTypeNames = map[AccountType]string{
	AccountTypeSavings:      "savings",
	AccountTypeChecking:     "checking",
	AccountTypeCreditCard:   "credit_card",
	AccountTypeFixedDeposit: "fixed_deposit",
	AccountTypeCash:         "cash",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t AccountType) Valid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

// ParseAccountType maps an API name such as "credit_card" to its AccountType.
func ParseAccountType(name string) (AccountType, bool) {
	for t, n := range accountTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
