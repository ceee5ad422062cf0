//go:build integration

package storage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func startPostgres(t *testing.T) *storage.Postgres {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("expenses"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	status, err := sqlconfig.RunMigrations(dsn)
	require.NoError(t, err)
	assert.Equal(t, uint(4), status.PostMigrationVersion)

	db, err := sqlconfig.Open(dsn)
	require.NoError(t, err)
	store := storage.NewPostgres(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func startOperator(t *testing.T, store storage.Storage) *operator.OperatorDelegator {
	t.Helper()
	delegator := operator.NewOperatorDelegator(store, 8, logging.SetupLogging())
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return delegator
}

func TestPostgres_EndToEnd(t *testing.T) {
	store := startPostgres(t)
	op := startOperator(t, store)
	ctx := context.Background()

	checking := &actions.CreateAccount{Name: "Checking", InitialBalance: decimal.RequireFromString("1000.00")}
	require.NoError(t, op.Process(ctx, checking))
	savings := &actions.CreateAccount{Name: "Savings", InitialBalance: decimal.RequireFromString("500.00")}
	require.NoError(t, op.Process(ctx, savings))
	food := &actions.CreateCategory{Name: "Food", Type: category.CategoryTypeExpense}
	require.NoError(t, op.Process(ctx, food))
	require.NoError(t, op.Process(ctx, &actions.SetBudgetAllocation{CategoryID: food.Created.ID, Amount: decimal.RequireFromString("500")}))

	march := civil.Date{Year: 2024, Month: time.March, Day: 10}
	for _, amount := range []string{"100.00", "25.00"} {
		require.NoError(t, op.Process(ctx, &actions.CreateTransaction{
			AccountID:  checking.Created.ID,
			CategoryID: food.Created.ID,
			Amount:     decimal.RequireFromString(amount),
			Type:       transaction.TransactionTypeExpense,
			Date:       march,
		}))
	}

	// Opposite-direction transfers on the same pair must neither deadlock nor lose updates.
	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- op.Process(ctx, &actions.CreateTransfer{FromAccountID: checking.Created.ID, ToAccountID: savings.Created.ID, CategoryID: food.Created.ID, Amount: decimal.RequireFromString("5.00"), Date: march})
		}()
		go func() {
			defer wg.Done()
			errs <- op.Process(ctx, &actions.CreateTransfer{FromAccountID: savings.Created.ID, ToAccountID: checking.Created.ID, CategoryID: food.Created.ID, Amount: decimal.RequireFromString("3.00"), Date: march})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	svc := service.NewService(store)
	acc, err := svc.Account.GetAccount(ctx, checking.Created.ID)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("835.00")), acc.Balance.String())

	total, err := svc.Account.GetTotalBalance(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1375.00")), total.String())

	for _, id := range []int64{checking.Created.ID, savings.Created.ID} {
		check, err := svc.Account.VerifyBalance(ctx, id)
		require.NoError(t, err)
		assert.True(t, check.Consistent(), "drift %s on account %d", check.Drift, id)
	}

	spending, err := svc.Spending.GetMonthlySpending(ctx, civil.Date{Year: 2024, Month: time.March, Day: 1}, civil.Date{Year: 2024, Month: time.March, Day: 31})
	require.NoError(t, err)
	require.Len(t, spending, 1)
	assert.True(t, spending[0].TotalSpent.Equal(decimal.RequireFromString("125.00")))
}

func TestPostgres_FailedActionRollsBack(t *testing.T) {
	store := startPostgres(t)
	op := startOperator(t, store)
	ctx := context.Background()

	from := &actions.CreateAccount{Name: "Wallet", InitialBalance: decimal.RequireFromString("10.00")}
	require.NoError(t, op.Process(ctx, from))
	to := &actions.CreateAccount{Name: "Jar"}
	require.NoError(t, op.Process(ctx, to))
	misc := &actions.CreateCategory{Name: "Misc", Type: category.CategoryTypeExpense}
	require.NoError(t, op.Process(ctx, misc))

	err := op.Process(ctx, &actions.CreateTransfer{FromAccountID: from.Created.ID, ToAccountID: to.Created.ID, CategoryID: misc.Created.ID, Amount: decimal.RequireFromString("10.01"), Date: civil.Date{Year: 2024, Month: time.January, Day: 1}})
	assert.Equal(t, apperrors.KindInsufficientFunds, apperrors.KindOf(err))

	err = op.Process(ctx, &actions.CreateCategory{Name: "Misc", Type: category.CategoryTypeIncome})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	err = op.Process(ctx, &actions.CreateTransaction{AccountID: 9999, CategoryID: misc.Created.ID, Type: transaction.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: civil.Date{Year: 2024, Month: time.January, Day: 1}})
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	listed, err := store.Read().Transactions.List(ctx, &transaction.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed.Transactions)

	wallet, err := store.Read().Accounts.FindByID(ctx, from.Created.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("10.00")))
}
