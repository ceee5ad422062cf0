package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID              int64  `json:"id" doc:"Account id"`
	Name            string `json:"name" doc:"Account name"`
	Type            string `json:"type" doc:"Account type"`
	Balance         string `json:"balance" doc:"Decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance the account was opened with"`
	IsActive        bool   `json:"isActive" doc:"Whether the account is active"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt       string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// AccountPathInput identifies an account by path.
type AccountPathInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Account id"`
}

// AccountOutput is the Huma output for a single account.
type AccountOutput struct {
	Body Account
}

// operatorProcessor runs write actions.
type operatorProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func toAccount(acc *account.Account) Account {
	return Account{
		ID:              acc.ID,
		Name:            acc.Name,
		Type:            acc.Type.String(),
		Balance:         acc.Balance.StringFixed(2),
		StartingBalance: acc.StartingBalance.StringFixed(2),
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       acc.UpdatedAt.Format(time.RFC3339),
	}
}

func parseAccountType(name string) (account.AccountType, error) {
	accountType, ok := account.ParseAccountType(name)
	if !ok {
		return 0, huma.NewError(http.StatusBadRequest, "invalid type")
	}
	return accountType, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}
