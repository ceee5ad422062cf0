package actions

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

const (
	maxNameLength        = 100
	maxDescriptionLength = 255
	moneyScale           = 2
)

// maxMoney is the exclusive bound of a NUMERIC(15,2) column.
var maxMoney = decimal.New(1, 13)

func validateMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(moneyScale)) {
		return apperrors.InvalidArgument(field, "must have at most 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxMoney) {
		return apperrors.InvalidArgument(field, "is out of range")
	}
	return nil
}

func validatePositiveAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.InvalidArgument(field, "must be greater than zero")
	}
	return validateMoney(field, amount)
}

func validateName(field, name string) error {
	if name == "" {
		return apperrors.InvalidArgument(field, "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return apperrors.InvalidArgument(field, "must be at most 100 characters")
	}
	return nil
}

// lockAccounts takes row locks on the given accounts in ascending id order so
// that concurrent units of work touching the same pair cannot deadlock.
func lockAccounts(ctx context.Context, writer *storage.Writer, ids ...int64) (map[int64]*account.Account, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make(map[int64]*account.Account, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		acc, err := writer.Account.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = acc
	}
	return locked, nil
}

// requireCategory reports a missing category as an invalid reference.
func requireCategory(ctx context.Context, writer *storage.Writer, id int64) error {
	_, err := writer.Category.FindByID(ctx, id)
	return asInvalidReference(err, "category", id)
}

func asInvalidReference(err error, entity string, id int64) error {
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return apperrors.InvalidReference(entity, id, err)
	}
	return err
}
