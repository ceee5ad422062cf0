package actions

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

type fixture struct {
	store    *memory.Store
	checking int64
	savings  int64
	food     int64
	salary   int64
}

var testDate = civil.Date{Year: 2024, Month: 3, Day: 15}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// run performs action in one unit of work, committing only on success.
func run(t *testing.T, store *memory.Store, action IAction) error {
	t.Helper()
	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	if err := action.Perform(context.Background(), writer); err != nil {
		require.NoError(t, writer.Rollback())
		return err
	}
	return writer.Commit()
}

func newFixture(t *testing.T, checkingBalance string) *fixture {
	t.Helper()
	f := &fixture{store: memory.New()}

	checking := &CreateAccount{Name: "Checking", Type: account.AccountTypeChecking, InitialBalance: dec(checkingBalance)}
	require.NoError(t, run(t, f.store, checking))
	f.checking = checking.Created.ID

	savings := &CreateAccount{Name: "Savings", Type: account.AccountTypeSavings, InitialBalance: decimal.Zero}
	require.NoError(t, run(t, f.store, savings))
	f.savings = savings.Created.ID

	food := &CreateCategory{Name: "Food", Type: category.CategoryTypeExpense, ColorCode: "#FF0000"}
	require.NoError(t, run(t, f.store, food))
	f.food = food.Created.ID

	salary := &CreateCategory{Name: "Salary", Type: category.CategoryTypeIncome}
	require.NoError(t, run(t, f.store, salary))
	f.salary = salary.Created.ID

	return f
}

func (f *fixture) balance(t *testing.T, accountID int64) decimal.Decimal {
	t.Helper()
	acc, err := f.store.Read().Accounts.FindByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}

func (f *fixture) transactions(t *testing.T) []*transaction.Transaction {
	t.Helper()
	result, err := f.store.Read().Transactions.List(context.Background(), nil)
	require.NoError(t, err)
	return result.Transactions
}

func (f *fixture) expense(t *testing.T, accountID int64, amount string) *transaction.Transaction {
	t.Helper()
	action := &CreateTransaction{
		AccountID:  accountID,
		CategoryID: f.food,
		Amount:     dec(amount),
		Type:       transaction.TransactionTypeExpense,
		Date:       testDate,
	}
	require.NoError(t, run(t, f.store, action))
	return action.Created
}
