package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

// CreateAccount opens an active account whose balance starts at InitialBalance.
type CreateAccount struct {
	Name           string
	Type           account.AccountType
	InitialBalance decimal.Decimal

	Created *account.Account
	IAction
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateName("name", c.Name); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return apperrors.InvalidArgument("type", "unknown account type")
	}
	if err := validateMoney("initialBalance", c.InitialBalance); err != nil {
		return err
	}

	created, err := writer.Account.Create(ctx, &account.AccountCreate{
		Name:            c.Name,
		Type:            c.Type,
		StartingBalance: c.InitialBalance,
		IsActive:        true,
	})
	if err != nil {
		return err
	}

	c.Created = created
	return nil
}
