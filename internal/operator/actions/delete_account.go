package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// DeleteAccount removes an account that has no transactions.
type DeleteAccount struct {
	ID int64
	IAction
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, d.ID); err != nil {
		return err
	}

	accountID := d.ID
	history, err := writer.Transaction.List(ctx, &transaction.TransactionFilter{AccountID: &accountID, Limit: 1})
	if err != nil {
		return err
	}
	if len(history.Transactions) > 0 {
		return apperrors.Conflict("account", "account has transactions, deactivate it instead")
	}

	return writer.Account.Delete(ctx, d.ID)
}
