package actions

import (
	"context"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/reconciler"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// CreateTransaction records an income or expense and applies it to the account balance.
type CreateTransaction struct {
	AccountID   int64
	CategoryID  int64
	Amount      decimal.Decimal
	Type        transaction.TransactionType
	Date        civil.Date
	Description string
	Notes       string

	Created *transaction.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateTransactionFields(t.Type, t.Amount, t.Date, t.Description); err != nil {
		return err
	}

	if _, err := lockAccounts(ctx, writer, t.AccountID); err != nil {
		return asInvalidReference(err, "account", t.AccountID)
	}
	if err := requireCategory(ctx, writer, t.CategoryID); err != nil {
		return err
	}

	created, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
		Description: t.Description,
		Notes:       t.Notes,
	})
	if err != nil {
		return err
	}

	if err := reconciler.Apply(ctx, writer.Account, created); err != nil {
		return err
	}

	t.Created = created
	return nil
}

func validateTransactionFields(txType transaction.TransactionType, amount decimal.Decimal, date civil.Date, description string) error {
	switch txType {
	case transaction.TransactionTypeIncome, transaction.TransactionTypeExpense:
	case transaction.TransactionTypeTransfer:
		return apperrors.InvalidArgument("type", "transfers must be created as a transfer pair")
	default:
		return apperrors.InvalidArgument("type", "unknown transaction type")
	}
	if err := validatePositiveAmount("amount", amount); err != nil {
		return err
	}
	if !date.IsValid() {
		return apperrors.InvalidArgument("date", "must be a valid calendar date")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return apperrors.InvalidArgument("description", "must be at most 255 characters")
	}
	return nil
}
