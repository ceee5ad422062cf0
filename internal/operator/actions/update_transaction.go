package actions

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/reconciler"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// UpdateTransaction overwrites a transaction. The stored effect is reversed on
// the original account before the new effect is applied on the new one.
type UpdateTransaction struct {
	ID          int64
	AccountID   int64
	CategoryID  int64
	Amount      decimal.Decimal
	Type        transaction.TransactionType
	Date        civil.Date
	Description string
	Notes       string

	Updated *transaction.Transaction
	IAction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing.Type == transaction.TransactionTypeTransfer {
		return apperrors.Conflict("transaction", "transfer legs cannot be edited, delete the transfer instead")
	}
	if err := validateTransactionFields(u.Type, u.Amount, u.Date, u.Description); err != nil {
		return err
	}

	if _, err := lockAccounts(ctx, writer, existing.AccountID, u.AccountID); err != nil {
		return asInvalidReference(err, "account", u.AccountID)
	}
	if err := requireCategory(ctx, writer, u.CategoryID); err != nil {
		return err
	}

	if err := reconciler.Reverse(ctx, writer.Account, existing); err != nil {
		return err
	}

	updated, err := writer.Transaction.Update(ctx, u.ID, &transaction.TransactionUpdate{
		AccountID:   u.AccountID,
		CategoryID:  u.CategoryID,
		Amount:      u.Amount,
		Type:        u.Type,
		Date:        u.Date,
		Description: u.Description,
		Notes:       u.Notes,
	})
	if err != nil {
		return err
	}

	if err := reconciler.Apply(ctx, writer.Account, updated); err != nil {
		return err
	}

	u.Updated = updated
	return nil
}
