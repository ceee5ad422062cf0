package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

func newListTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	return api
}

func TestParseListTransactionsInput_Filters(t *testing.T) {
	filter, err := parseListTransactionsInput(&ListTransactionsInput{Body: ListTransactionsBody{
		AccountID: 4,
		Type:      "income",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Cursor:    &ListTransactionsCursor{Position: 20, Limit: 10},
	}})

	require.NoError(t, err)
	require.NotNil(t, filter.AccountID)
	assert.Equal(t, int64(4), *filter.AccountID)
	assert.Nil(t, filter.CategoryID)
	assert.Equal(t, transaction.TransactionTypeIncome, *filter.Type)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 31}, *filter.EndDate)
	assert.Equal(t, 20, filter.Offset)
	assert.Equal(t, 10, filter.Limit)
}

func TestParseListTransactionsInput_Empty(t *testing.T) {
	filter, err := parseListTransactionsInput(&ListTransactionsInput{})

	require.NoError(t, err)
	assert.Equal(t, &transaction.TransactionFilter{}, filter)
}

func TestHTTP_ListTransactions_Success(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, mock.Anything).Return(&transaction.TransactionListResult{
		Transactions: []*transaction.Transaction{
			{ID: 2, Amount: decimal.RequireFromString("3"), Date: civil.Date{Year: 2024, Month: 1, Day: 2}},
			{ID: 1, Amount: decimal.RequireFromString("4"), Date: civil.Date{Year: 2024, Month: 1, Day: 1}},
		},
		NextCursor: &transaction.TransactionCursor{Position: 2, Limit: 2},
	}, nil)

	resp := newListTestAPI(t, svc).Post("/v1/transaction/list", ListTransactionsBody{Cursor: &ListTransactionsCursor{Position: 0, Limit: 2}})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "2024-01-02", body.Transactions[0].Date)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 2, body.NextCursor.Position)
}

func TestHTTP_ListTransactions_InvalidRange(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, mock.Anything).Return(nil, apperrors.InvalidArgument("dateRange", "start must not be after end"))

	resp := newListTestAPI(t, svc).Post("/v1/transaction/list", ListTransactionsBody{StartDate: "2024-02-01", EndDate: "2024-01-01"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("ListTransactions", mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	resp := newListTestAPI(t, svc).Post("/v1/transaction/list", ListTransactionsBody{})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_GetTransaction(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, int64(3)).Return(&transaction.Transaction{ID: 3, Amount: decimal.RequireFromString("9.9")}, nil)
	svc.On("GetTransaction", mock.Anything, int64(4)).Return(nil, apperrors.NotFound("transaction", int64(4)))
	api := newListTestAPI(t, svc)

	resp := api.Get("/v1/transaction/3")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"amount":"9.90"`)

	assert.Equal(t, http.StatusNotFound, api.Get("/v1/transaction/4").Code)
}
