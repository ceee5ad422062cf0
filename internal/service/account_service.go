package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/reconciler"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// AccountService handles account reads.
type AccountService struct {
	storage storage.Storage
}

func NewAccountService(store storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// BalanceCheck compares the stored balance with one rebuilt from history.
type BalanceCheck struct {
	AccountID  int64
	Stored     decimal.Decimal
	Recomputed decimal.Decimal
	Drift      decimal.Decimal
}

func (b *BalanceCheck) Consistent() bool {
	return b.Drift.IsZero()
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	return s.storage.Read().Accounts.FindByID(ctx, id)
}

// ListAccounts returns a page of accounts; a nil filter lists every account.
func (s *AccountService) ListAccounts(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	if filter == nil {
		filter = &account.AccountFilter{}
	}
	paged := *filter
	paged.Limit = normalizeLimit(filter.Limit)
	return s.storage.Read().Accounts.List(ctx, &paged)
}

// GetTotalBalance sums the balances of active accounts.
func (s *AccountService) GetTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	result, err := s.storage.Read().Accounts.List(ctx, &account.AccountFilter{ActiveOnly: true})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, acc := range result.Accounts {
		total = total.Add(acc.Balance)
	}
	return total, nil
}

// VerifyBalance rebuilds the balance from history without writing anything.
// It takes no lock, so a write landing between its two reads shows up as drift.
func (s *AccountService) VerifyBalance(ctx context.Context, id int64) (*BalanceCheck, error) {
	reader := s.storage.Read()
	acc, err := reader.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := reader.Transactions.List(ctx, &transaction.TransactionFilter{AccountID: &id})
	if err != nil {
		return nil, err
	}

	recomputed := reconciler.Recompute(acc.StartingBalance, history.Transactions)
	return &BalanceCheck{
		AccountID:  id,
		Stored:     acc.Balance,
		Recomputed: recomputed,
		Drift:      acc.Balance.Sub(recomputed),
	}, nil
}
