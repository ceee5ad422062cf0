package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func TestGetTotalBalance_ActiveOnly(t *testing.T) {
	store := memory.New()
	createAccount(t, store, "Checking", "150.25")
	createAccount(t, store, "Wallet", "20.00")
	closed := createAccount(t, store, "Old", "999.00")
	perform(t, store, &actions.DeactivateAccount{ID: closed})

	total, err := NewAccountService(store).GetTotalBalance(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(dec("170.25")))
}

func TestListAccounts_Paginates(t *testing.T) {
	store := memory.New()
	for _, name := range []string{"A", "B", "C"} {
		createAccount(t, store, name, "0")
	}
	svc := NewAccountService(store)

	first, err := svc.ListAccounts(context.Background(), &account.AccountFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Accounts, 2)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, 2, first.NextCursor.Position)

	second, err := svc.ListAccounts(context.Background(), &account.AccountFilter{Limit: 2, Offset: first.NextCursor.Position})
	require.NoError(t, err)
	assert.Len(t, second.Accounts, 1)
	assert.Nil(t, second.NextCursor)
}

func TestVerifyBalance(t *testing.T) {
	store := memory.New()
	checking := createAccount(t, store, "Checking", "100.00")
	savings := createAccount(t, store, "Savings", "0")
	food := createCategory(t, store, "Food", category.CategoryTypeExpense)
	record(t, store, checking, food, transaction.TransactionTypeExpense, "30.00", date(2024, 1, 5))
	record(t, store, checking, food, transaction.TransactionTypeIncome, "5.50", date(2024, 1, 6))
	perform(t, store, &actions.CreateTransfer{FromAccountID: checking, ToAccountID: savings, CategoryID: food, Amount: dec("25.00"), Date: date(2024, 1, 7)})
	svc := NewAccountService(store)

	check, err := svc.VerifyBalance(context.Background(), checking)
	require.NoError(t, err)
	assert.True(t, check.Consistent())
	assert.True(t, check.Stored.Equal(dec("50.50")))

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Account.UpdateBalance(context.Background(), savings, dec("40.00")))
	require.NoError(t, writer.Commit())

	check, err = svc.VerifyBalance(context.Background(), savings)
	require.NoError(t, err)
	assert.False(t, check.Consistent())
	assert.True(t, check.Recomputed.Equal(dec("25.00")))
	assert.True(t, check.Drift.Equal(dec("15.00")))
}

func TestVerifyBalance_UnknownAccount(t *testing.T) {
	_, err := NewAccountService(memory.New()).VerifyBalance(context.Background(), 42)

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
