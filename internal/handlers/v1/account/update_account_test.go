package account

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

func newWriteTestAPI(t *testing.T, op operatorProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewUpdateAccountHandler(op).Register(api)
	NewDeactivateAccountHandler(op).Register(api)
	NewDeleteAccountHandler(op).Register(api)
	NewRecomputeBalanceHandler(op).Register(api)
	return api
}

func TestHTTP_UpdateAccount(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.UpdateAccount) bool {
		return a.ID == 2 && a.Name == "Joint" && a.Type == account.AccountTypeChecking && !a.IsActive
	})).Run(func(args mock.Arguments) {
		action := args.Get(1).(*actions.UpdateAccount)
		action.Updated = &account.Account{ID: 2, Name: action.Name, Type: action.Type}
	}).Return(nil)

	resp := newWriteTestAPI(t, op).Put("/v1/account/2", UpdateAccountBody{Name: "Joint", Type: "checking"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"isActive":false`)
	op.AssertExpectations(t)
}

func TestHTTP_DeactivateAccount_NotFound(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.Anything).Return(apperrors.NotFound("account", int64(8)))

	resp := newWriteTestAPI(t, op).Post("/v1/account/8/deactivate")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_DeleteAccount(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, &actions.DeleteAccount{ID: 4}).Return(nil).Once()
	op.On("Process", mock.Anything, &actions.DeleteAccount{ID: 5}).Return(apperrors.Conflict("account", "account has transactions")).Once()
	api := newWriteTestAPI(t, op)

	assert.Equal(t, http.StatusNoContent, api.Delete("/v1/account/4").Code)
	assert.Equal(t, http.StatusConflict, api.Delete("/v1/account/5").Code)
	op.AssertExpectations(t)
}

func TestHTTP_RecomputeBalance(t *testing.T) {
	op := new(mockOperator)
	op.On("Process", mock.Anything, mock.AnythingOfType("*actions.RecomputeBalance")).Run(func(args mock.Arguments) {
		action := args.Get(1).(*actions.RecomputeBalance)
		action.Previous = decimal.RequireFromString("40")
		action.Balance = decimal.RequireFromString("25")
	}).Return(nil)

	resp := newWriteTestAPI(t, op).Post("/v1/account/3/recompute")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"previous":"40.00"`)
	assert.Contains(t, resp.Body.String(), `"balance":"25.00"`)
}
