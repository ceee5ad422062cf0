package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/reconciler"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// DeleteTransaction removes a transaction after reversing its effect. Deleting
// either leg of a transfer removes the whole pair and restores both balances.
type DeleteTransaction struct {
	ID int64

	Deleted []*transaction.Transaction
	IAction
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}

	if !existing.IsTransferLeg() {
		if err := reconciler.Reverse(ctx, writer.Account, existing); err != nil {
			return err
		}
		if err := writer.Transaction.Delete(ctx, existing.ID); err != nil {
			return err
		}
		d.Deleted = []*transaction.Transaction{existing}
		return nil
	}

	legs, err := writer.Transaction.FindByTransferReference(ctx, existing.TransferReferenceID)
	if err != nil {
		return err
	}

	accountIDs := make([]int64, len(legs))
	for i, leg := range legs {
		accountIDs[i] = leg.AccountID
	}
	if _, err := lockAccounts(ctx, writer, accountIDs...); err != nil {
		return err
	}

	for _, leg := range legs {
		if err := reconciler.ReverseLeg(ctx, writer.Account, leg); err != nil {
			return err
		}
		if err := writer.Transaction.Delete(ctx, leg.ID); err != nil {
			return err
		}
	}
	d.Deleted = legs
	return nil
}
