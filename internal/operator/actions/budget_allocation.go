package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
)

type CreateBudgetAllocation struct {
	CategoryID int64
	Amount     decimal.Decimal

	Created *budget.Allocation
	IAction
}

func (c *CreateBudgetAllocation) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAllocation(c.Amount); err != nil {
		return err
	}
	if err := requireCategory(ctx, writer, c.CategoryID); err != nil {
		return err
	}

	_, err := writer.Budget.FindByCategoryID(ctx, c.CategoryID)
	if err == nil {
		return apperrors.Conflict("budget allocation", "category already has a budget allocation")
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return err
	}

	created, err := writer.Budget.Insert(ctx, c.CategoryID, c.Amount)
	if err != nil {
		return err
	}

	c.Created = created
	return nil
}

type UpdateBudgetAllocation struct {
	ID     int64
	Amount decimal.Decimal

	Updated *budget.Allocation
	IAction
}

func (u *UpdateBudgetAllocation) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAllocation(u.Amount); err != nil {
		return err
	}
	if _, err := writer.Budget.FindByID(ctx, u.ID); err != nil {
		return err
	}

	updated, err := writer.Budget.UpdateAmount(ctx, u.ID, u.Amount)
	if err != nil {
		return err
	}

	u.Updated = updated
	return nil
}

// SetBudgetAllocation creates the category's allocation or replaces its amount.
type SetBudgetAllocation struct {
	CategoryID int64
	Amount     decimal.Decimal

	Allocation *budget.Allocation
	IAction
}

func (s *SetBudgetAllocation) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAllocation(s.Amount); err != nil {
		return err
	}
	if err := requireCategory(ctx, writer, s.CategoryID); err != nil {
		return err
	}

	existing, err := writer.Budget.FindByCategoryID(ctx, s.CategoryID)
	switch {
	case err == nil:
		s.Allocation, err = writer.Budget.UpdateAmount(ctx, existing.ID, s.Amount)
	case apperrors.IsKind(err, apperrors.KindNotFound):
		s.Allocation, err = writer.Budget.Insert(ctx, s.CategoryID, s.Amount)
	}
	return err
}

type DeleteBudgetAllocation struct {
	ID int64
	IAction
}

func (d *DeleteBudgetAllocation) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Budget.FindByID(ctx, d.ID); err != nil {
		return err
	}
	return writer.Budget.Delete(ctx, d.ID)
}

func validateAllocation(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.InvalidArgument("allocatedAmount", "must not be negative")
	}
	return validateMoney("allocatedAmount", amount)
}
