package transaction

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                  int64  `json:"id" doc:"Transaction id"`
	AccountID           int64  `json:"accountId" doc:"Account id"`
	CategoryID          int64  `json:"categoryId" doc:"Category id"`
	Amount              string `json:"amount" doc:"Decimal amount, always positive"`
	Type                string `json:"type" doc:"expense, income or transfer"`
	Date                string `json:"date" doc:"Calendar date (YYYY-MM-DD)"`
	Description         string `json:"description" doc:"Description"`
	Notes               string `json:"notes" doc:"Free-form notes"`
	TransferReferenceID string `json:"transferReferenceId,omitempty" doc:"Shared by both legs of a transfer"`
	TransferDirection   string `json:"transferDirection,omitempty" doc:"out or in, for transfer legs"`
	CreatedAt           string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt           string `json:"updatedAt" doc:"RFC3339 last update time"`
}

type TransactionPathInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Transaction id"`
}

type TransactionOutput struct {
	Body Transaction
}

// operatorProcessor runs write actions.
type operatorProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func toTransaction(tx *transaction.Transaction) Transaction {
	return Transaction{
		ID:                  tx.ID,
		AccountID:           tx.AccountID,
		CategoryID:          tx.CategoryID,
		Amount:              tx.Amount.StringFixed(2),
		Type:                tx.Type.String(),
		Date:                tx.Date.String(),
		Description:         tx.Description,
		Notes:               tx.Notes,
		TransferReferenceID: tx.TransferReferenceID,
		TransferDirection:   tx.TransferDirection.String(),
		CreatedAt:           tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           tx.UpdatedAt.Format(time.RFC3339),
	}
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return amount, nil
}

// parseDate parses a YYYY-MM-DD date. An empty value means today.
func parseDate(field, value string) (civil.Date, error) {
	if value == "" {
		return civil.DateOf(time.Now()), nil
	}
	date, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return date, nil
}

func parseTransactionType(value string) (transaction.TransactionType, error) {
	txType, ok := transaction.ParseTransactionType(value)
	if !ok {
		return 0, huma.NewError(http.StatusBadRequest, "invalid type")
	}
	return txType, nil
}
