package actions

import (
	"context"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

const (
	transferOutSuffix = "(Transfer Out)"
	transferInSuffix  = "(Transfer In)"
)

// CreateTransfer moves money between two accounts as a pair of transfer legs
// sharing one reference id. Both legs and both balance changes commit together.
type CreateTransfer struct {
	FromAccountID int64
	ToAccountID   int64
	CategoryID    int64
	Amount        decimal.Decimal
	Date          civil.Date
	Description   string
	Notes         string

	Outgoing *transaction.Transaction
	Incoming *transaction.Transaction
	IAction
}

func (c *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validatePositiveAmount("amount", c.Amount); err != nil {
		return err
	}
	if c.FromAccountID == c.ToAccountID {
		return apperrors.InvalidArgument("toAccountId", "must differ from fromAccountId")
	}
	if !c.Date.IsValid() {
		return apperrors.InvalidArgument("date", "must be a valid calendar date")
	}

	locked, err := lockAccounts(ctx, writer, c.FromAccountID, c.ToAccountID)
	if err != nil {
		return err
	}
	if err := requireCategory(ctx, writer, c.CategoryID); err != nil {
		return err
	}

	from := locked[c.FromAccountID]
	to := locked[c.ToAccountID]
	if from.Balance.LessThan(c.Amount) {
		return apperrors.InsufficientFunds(from.ID, from.Balance, c.Amount)
	}

	referenceID, err := uuid.NewV4()
	if err != nil {
		return err
	}

	outgoing, err := writer.Transaction.Insert(ctx, c.leg(from.ID, referenceID.String(), transaction.TransferDirectionOut, transferOutSuffix))
	if err != nil {
		return err
	}
	incoming, err := writer.Transaction.Insert(ctx, c.leg(to.ID, referenceID.String(), transaction.TransferDirectionIn, transferInSuffix))
	if err != nil {
		return err
	}

	if err := writer.Account.UpdateBalance(ctx, from.ID, from.Balance.Sub(c.Amount)); err != nil {
		return err
	}
	if err := writer.Account.UpdateBalance(ctx, to.ID, to.Balance.Add(c.Amount)); err != nil {
		return err
	}

	c.Outgoing = outgoing
	c.Incoming = incoming
	return nil
}

func (c *CreateTransfer) leg(accountID int64, referenceID string, direction transaction.TransferDirection, suffix string) *transaction.TransactionCreate {
	return &transaction.TransactionCreate{
		AccountID:           accountID,
		CategoryID:          c.CategoryID,
		Amount:              c.Amount,
		Type:                transaction.TransactionTypeTransfer,
		Date:                c.Date,
		Description:         transferDescription(c.Description, suffix),
		Notes:               c.Notes,
		TransferReferenceID: referenceID,
		TransferDirection:   direction,
	}
}

func transferDescription(description, suffix string) string {
	described := strings.TrimSpace(description + " " + suffix)
	if utf8.RuneCountInString(described) > maxDescriptionLength {
		keep := maxDescriptionLength - utf8.RuneCountInString(suffix) - 1
		described = strings.TrimSpace(string([]rune(description)[:keep])) + " " + suffix
	}
	return described
}
