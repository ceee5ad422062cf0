package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

func newCreateTestAPI(t *testing.T, op operatorProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(op).Register(api)
	return api
}

func TestParseCreateAccountInput_DefaultsBalance(t *testing.T) {
	action, err := parseCreateAccountInput(&CreateAccountInput{Body: CreateAccountBody{Name: "Wallet", Type: "cash"}})

	require.NoError(t, err)
	assert.Equal(t, "Wallet", action.Name)
	assert.Equal(t, account.AccountTypeCash, action.Type)
	assert.True(t, action.InitialBalance.IsZero())
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateAccount) bool {
		return a.Name == "Checking" && a.Type == account.AccountTypeChecking && a.InitialBalance.Equal(decimal.RequireFromString("250.10"))
	})).Run(func(args mock.Arguments) {
		action := args.Get(1).(*actions.CreateAccount)
		action.Created = &account.Account{ID: 7, Name: action.Name, Type: action.Type, Balance: action.InitialBalance, StartingBalance: action.InitialBalance, IsActive: true}
	}).Return(nil)

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{
		Name:           "Checking",
		Type:           "checking",
		InitialBalance: "250.10",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "250.10", body.Balance)
	assert.Equal(t, "checking", body.Type)
	assert.True(t, body.IsActive)
	op.AssertExpectations(t)
}

func TestHTTP_CreateAccount_UnknownType(t *testing.T) {
	op := new(mockOperator)

	// Rejected by the enum schema before the handler runs.
	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: "brokerage"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	op.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateAccount_InvalidBalance(t *testing.T) {
	op := new(mockOperator)

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: "checking", InitialBalance: "lots"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	op.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateAccount_ValidationError(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.Anything).Return(apperrors.InvalidArgument("initialBalance", "must have at most 2 decimal places"))

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: "checking", InitialBalance: "1.001"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	op.AssertExpectations(t)
}

func TestHTTP_CreateAccount_OperatorError(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.Anything).Return(errors.New("database unavailable"))

	resp := newCreateTestAPI(t, op).Post("/v1/account", CreateAccountBody{Name: "Checking", Type: "checking"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "database unavailable")
}
