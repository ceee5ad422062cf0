package service

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 15, 4, 5, 0, time.UTC) }
}

func perform(t *testing.T, store *memory.Store, action actions.IAction) {
	t.Helper()
	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	if err := action.Perform(context.Background(), writer); err != nil {
		require.NoError(t, writer.Rollback())
		require.NoError(t, err)
	}
	require.NoError(t, writer.Commit())
}

func createAccount(t *testing.T, store *memory.Store, name, balance string) int64 {
	t.Helper()
	action := &actions.CreateAccount{Name: name, InitialBalance: dec(balance)}
	perform(t, store, action)
	return action.Created.ID
}

func createCategory(t *testing.T, store *memory.Store, name string, categoryType category.CategoryType) int64 {
	t.Helper()
	action := &actions.CreateCategory{Name: name, Type: categoryType}
	perform(t, store, action)
	return action.Created.ID
}

func record(t *testing.T, store *memory.Store, accountID, categoryID int64, txType transaction.TransactionType, amount string, on civil.Date) {
	t.Helper()
	perform(t, store, &actions.CreateTransaction{
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     dec(amount),
		Type:       txType,
		Date:       on,
	})
}

// stubStorage serves a fixed Reader, for failure injection.
type stubStorage struct {
	reader *storage.Reader
}

func (s *stubStorage) Read() *storage.Reader { return s.reader }

func (s *stubStorage) Write(context.Context) (*storage.Writer, error) {
	panic("read-only stub")
}

func (s *stubStorage) Ping(context.Context) error { return nil }

func (s *stubStorage) Close() error { return nil }

type mockBudgetReader struct {
	mock.Mock
}

func (m *mockBudgetReader) FindByID(ctx context.Context, id int64) (*budget.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Allocation), args.Error(1)
}

func (m *mockBudgetReader) FindByCategoryID(ctx context.Context, categoryID int64) (*budget.Allocation, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Allocation), args.Error(1)
}

func (m *mockBudgetReader) List(ctx context.Context) ([]*budget.Allocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*budget.Allocation), args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) (*transaction.TransactionListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.TransactionListResult), args.Error(1)
}

func (m *mockTransactionReader) FindByTransferReference(ctx context.Context, referenceID string) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionReader) SumByCategory(ctx context.Context, filter *transaction.SumFilter) ([]*transaction.CategoryTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.CategoryTotal), args.Error(1)
}
