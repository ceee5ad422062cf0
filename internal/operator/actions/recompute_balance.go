package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/reconciler"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// RecomputeBalance rebuilds an account's balance from its full transaction
// history and overwrites the stored value when they disagree.
type RecomputeBalance struct {
	AccountID int64

	Previous decimal.Decimal
	Balance  decimal.Decimal
	IAction
}

func (r *RecomputeBalance) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByIDForUpdate(ctx, r.AccountID)
	if err != nil {
		return err
	}

	accountID := r.AccountID
	history, err := writer.Transaction.List(ctx, &transaction.TransactionFilter{AccountID: &accountID})
	if err != nil {
		return err
	}

	r.Previous = acc.Balance
	r.Balance = reconciler.Recompute(acc.StartingBalance, history.Transactions)
	if r.Balance.Equal(acc.Balance) {
		return nil
	}
	return writer.Account.UpdateBalance(ctx, r.AccountID, r.Balance)
}
