package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func TestUpdateTransaction_ChangeAmount(t *testing.T) {
	f := newFixture(t, "100.00")
	created := f.expense(t, f.checking, "30.00")

	action := &UpdateTransaction{
		ID:          created.ID,
		AccountID:   f.checking,
		CategoryID:  f.food,
		Amount:      dec("45.50"),
		Type:        transaction.TransactionTypeExpense,
		Date:        testDate,
		Description: "groceries",
	}
	require.NoError(t, run(t, f.store, action))

	assert.True(t, f.balance(t, f.checking).Equal(dec("54.50")))
	assert.Equal(t, "groceries", action.Updated.Description)
}

func TestUpdateTransaction_MoveToOtherAccount(t *testing.T) {
	f := newFixture(t, "100.00")
	created := f.expense(t, f.checking, "30.00")

	require.NoError(t, run(t, f.store, &UpdateTransaction{
		ID:         created.ID,
		AccountID:  f.savings,
		CategoryID: f.food,
		Amount:     dec("30.00"),
		Type:       transaction.TransactionTypeExpense,
		Date:       testDate,
	}))

	assert.True(t, f.balance(t, f.checking).Equal(dec("100.00")))
	assert.True(t, f.balance(t, f.savings).Equal(dec("-30.00")))
}

func TestUpdateTransaction_ExpenseToIncome(t *testing.T) {
	f := newFixture(t, "100.00")
	created := f.expense(t, f.checking, "20.00")

	require.NoError(t, run(t, f.store, &UpdateTransaction{
		ID:         created.ID,
		AccountID:  f.checking,
		CategoryID: f.salary,
		Amount:     dec("20.00"),
		Type:       transaction.TransactionTypeIncome,
		Date:       testDate,
	}))

	assert.True(t, f.balance(t, f.checking).Equal(dec("120.00")))
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	f := newFixture(t, "100.00")

	err := run(t, f.store, &UpdateTransaction{
		ID:         42,
		AccountID:  f.checking,
		CategoryID: f.food,
		Amount:     dec("1.00"),
		Type:       transaction.TransactionTypeExpense,
		Date:       testDate,
	})

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateTransaction_MissingNewAccountLeavesBalance(t *testing.T) {
	f := newFixture(t, "100.00")
	created := f.expense(t, f.checking, "30.00")

	err := run(t, f.store, &UpdateTransaction{
		ID:         created.ID,
		AccountID:  999,
		CategoryID: f.food,
		Amount:     dec("30.00"),
		Type:       transaction.TransactionTypeExpense,
		Date:       testDate,
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.True(t, f.balance(t, f.checking).Equal(dec("70.00")))
}

func TestUpdateTransaction_TransferLegIsConflict(t *testing.T) {
	f := newFixture(t, "150.00")
	transfer := &CreateTransfer{FromAccountID: f.checking, ToAccountID: f.savings, CategoryID: f.food, Amount: dec("50.00"), Date: testDate}
	require.NoError(t, run(t, f.store, transfer))

	err := run(t, f.store, &UpdateTransaction{
		ID:         transfer.Outgoing.ID,
		AccountID:  f.checking,
		CategoryID: f.food,
		Amount:     dec("10.00"),
		Type:       transaction.TransactionTypeExpense,
		Date:       testDate,
	})

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.True(t, f.balance(t, f.checking).Equal(dec("100.00")))
}
