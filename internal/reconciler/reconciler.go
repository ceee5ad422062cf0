// Package reconciler keeps an account's materialized balance in step with its
// transactions. Every write path applies an effect exactly once when a
// transaction is created and reverses it exactly once before the transaction
// is overwritten or removed.
package reconciler

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// BalanceStore is the slice of the account store the reconciler needs.
type BalanceStore interface {
	FindByIDForUpdate(ctx context.Context, id int64) (*account.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
}

// Delta is the signed change a transaction of type t applies through Apply.
// Transfers are settled by the transfer workflow and contribute nothing here.
func Delta(t transaction.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case transaction.TransactionTypeIncome:
		return amount
	case transaction.TransactionTypeExpense:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

// Effect is the full ledger effect of txn on its account, transfer legs included.
func Effect(txn *transaction.Transaction) decimal.Decimal {
	if txn.Type != transaction.TransactionTypeTransfer {
		return Delta(txn.Type, txn.Amount)
	}
	switch txn.TransferDirection {
	case transaction.TransferDirectionOut:
		return txn.Amount.Neg()
	case transaction.TransferDirectionIn:
		return txn.Amount
	default:
		return decimal.Zero
	}
}

// Apply adds the effect of txn to its account's balance.
func Apply(ctx context.Context, accounts BalanceStore, txn *transaction.Transaction) error {
	return adjust(ctx, accounts, txn.AccountID, Delta(txn.Type, txn.Amount))
}

// Reverse removes the effect of txn from its account's balance.
func Reverse(ctx context.Context, accounts BalanceStore, txn *transaction.Transaction) error {
	return adjust(ctx, accounts, txn.AccountID, Delta(txn.Type, txn.Amount).Neg())
}

// ReverseLeg removes a transfer leg's effect, crediting the source back and
// debiting the destination.
func ReverseLeg(ctx context.Context, accounts BalanceStore, leg *transaction.Transaction) error {
	return adjust(ctx, accounts, leg.AccountID, Effect(leg).Neg())
}

func adjust(ctx context.Context, accounts BalanceStore, accountID int64, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	acc, err := accounts.FindByIDForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	return accounts.UpdateBalance(ctx, accountID, acc.Balance.Add(delta))
}

// Recompute rebuilds a balance from the starting balance and the full history.
func Recompute(starting decimal.Decimal, history []*transaction.Transaction) decimal.Decimal {
	balance := starting
	for _, txn := range history {
		balance = balance.Add(Effect(txn))
	}
	return balance
}
