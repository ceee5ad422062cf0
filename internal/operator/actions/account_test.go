package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func TestCreateAccount(t *testing.T) {
	f := newFixture(t, "0")

	action := &CreateAccount{Name: "Wallet", Type: account.AccountTypeCash, InitialBalance: dec("20.00")}
	require.NoError(t, run(t, f.store, action))

	assert.True(t, action.Created.IsActive)
	assert.True(t, action.Created.Balance.Equal(dec("20.00")))
	assert.True(t, action.Created.StartingBalance.Equal(dec("20.00")))

	err := run(t, f.store, &CreateAccount{Name: "", Type: account.AccountTypeCash})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	err = run(t, f.store, &CreateAccount{Name: "Bad", Type: account.AccountType(42)})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	wide := &CreateAccount{Name: strings.Repeat("ü", maxNameLength), Type: account.AccountTypeCash}
	require.NoError(t, run(t, f.store, wide))
	assert.Equal(t, strings.Repeat("ü", maxNameLength), wide.Created.Name)

	err = run(t, f.store, &CreateAccount{Name: strings.Repeat("ü", maxNameLength+1), Type: account.AccountTypeCash})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdateAccount_KeepsBalance(t *testing.T) {
	f := newFixture(t, "55.00")

	action := &UpdateAccount{ID: f.checking, Name: "Main", Type: account.AccountTypeChecking, IsActive: true}
	require.NoError(t, run(t, f.store, action))

	assert.Equal(t, "Main", action.Updated.Name)
	assert.True(t, action.Updated.Balance.Equal(dec("55.00")))
}

func TestDeactivateAccount(t *testing.T) {
	f := newFixture(t, "0")

	action := &DeactivateAccount{ID: f.savings}
	require.NoError(t, run(t, f.store, action))
	assert.False(t, action.Updated.IsActive)

	err := run(t, f.store, &DeactivateAccount{ID: 404})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t, "10.00")
	f.expense(t, f.checking, "1.00")

	err := run(t, f.store, &DeleteAccount{ID: f.checking})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	require.NoError(t, run(t, f.store, &DeleteAccount{ID: f.savings}))
	_, err = f.store.Read().Accounts.FindByID(context.Background(), f.savings)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRecomputeBalance_RepairsDrift(t *testing.T) {
	f := newFixture(t, "150.00")
	f.expense(t, f.checking, "20.00")
	require.NoError(t, run(t, f.store, &CreateTransaction{
		AccountID: f.checking, CategoryID: f.salary, Amount: dec("5.00"), Type: transaction.TransactionTypeIncome, Date: testDate,
	}))
	require.NoError(t, run(t, f.store, &CreateTransfer{
		FromAccountID: f.checking, ToAccountID: f.savings, CategoryID: f.food, Amount: dec("35.00"), Date: testDate,
	}))

	// Corrupt the materialized balance behind the engine's back.
	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Account.UpdateBalance(context.Background(), f.checking, dec("1.00")))
	require.NoError(t, writer.Commit())

	action := &RecomputeBalance{AccountID: f.checking}
	require.NoError(t, run(t, f.store, action))

	assert.True(t, action.Previous.Equal(dec("1.00")))
	assert.True(t, action.Balance.Equal(dec("100.00")))
	assert.True(t, f.balance(t, f.checking).Equal(dec("100.00")))

	savings := &RecomputeBalance{AccountID: f.savings}
	require.NoError(t, run(t, f.store, savings))
	assert.True(t, savings.Balance.Equal(dec("35.00")))
	assert.True(t, savings.Previous.Equal(savings.Balance))
}
