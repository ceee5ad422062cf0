package account

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.AccountListResult), args.Error(1)
}

func (m *mockAccountService) GetTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockAccountService) VerifyBalance(ctx context.Context, id int64) (*service.BalanceCheck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BalanceCheck), args.Error(1)
}
