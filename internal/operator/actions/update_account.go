package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

// UpdateAccount changes an account's descriptive fields. The balance is left alone.
type UpdateAccount struct {
	ID       int64
	Name     string
	Type     account.AccountType
	IsActive bool

	Updated *account.Account
	IAction
}

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateName("name", u.Name); err != nil {
		return err
	}
	if !u.Type.Valid() {
		return apperrors.InvalidArgument("type", "unknown account type")
	}
	if _, err := writer.Account.FindByIDForUpdate(ctx, u.ID); err != nil {
		return err
	}

	updated, err := writer.Account.Update(ctx, u.ID, &account.AccountUpdate{
		Name:     u.Name,
		Type:     u.Type,
		IsActive: u.IsActive,
	})
	if err != nil {
		return err
	}

	u.Updated = updated
	return nil
}

// DeactivateAccount marks an account inactive and keeps its history.
type DeactivateAccount struct {
	ID int64

	Updated *account.Account
	IAction
}

func (d *DeactivateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Account.FindByIDForUpdate(ctx, d.ID)
	if err != nil {
		return err
	}

	updated, err := writer.Account.Update(ctx, d.ID, &account.AccountUpdate{
		Name:     existing.Name,
		Type:     existing.Type,
		IsActive: false,
	})
	if err != nil {
		return err
	}

	d.Updated = updated
	return nil
}
