package transaction

import (
	"context"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
type ListTransactionsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransactionsBody is the request body for listing transactions. The
// filters are repeated unchanged when following a cursor.
type ListTransactionsBody struct {
	AccountID  int64                   `json:"accountId,omitempty" minimum:"0" doc:"Only transactions of this account"`
	CategoryID int64                   `json:"categoryId,omitempty" minimum:"0" doc:"Only transactions in this category"`
	Type       string                  `json:"type,omitempty" enum:"expense,income,transfer" doc:"Only transactions of this type"`
	StartDate  string                  `json:"startDate,omitempty" format:"date" doc:"Earliest date, inclusive"`
	EndDate    string                  `json:"endDate,omitempty" format:"date" doc:"Latest date, inclusive"`
	Cursor     *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions, newest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, filter *transaction.TransactionFilter) (*transaction.TransactionListResult, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a filtered, paginated list of transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput turns the request body into a filter. Without a
// cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (*transaction.TransactionFilter, error) {
	filter := &transaction.TransactionFilter{}
	if input.Body.AccountID > 0 {
		filter.AccountID = &input.Body.AccountID
	}
	if input.Body.CategoryID > 0 {
		filter.CategoryID = &input.Body.CategoryID
	}
	if input.Body.Type != "" {
		txType, err := parseTransactionType(input.Body.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &txType
	}
	if input.Body.StartDate != "" {
		start, err := civil.ParseDate(input.Body.StartDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		filter.StartDate = &start
	}
	if input.Body.EndDate != "" {
		end, err := civil.ParseDate(input.Body.EndDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		filter.EndDate = &end
	}
	if input.Body.Cursor != nil {
		filter.Offset = input.Body.Cursor.Position
		filter.Limit = input.Body.Cursor.Limit
	}
	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var result *transaction.TransactionListResult
	err = apierror.Timed(ctx, "listTransactionsMs", func() error {
		result, err = h.TransactionService.ListTransactions(ctx, filter)
		return err
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to list transactions")
	}

	apierror.AddData(ctx, "transactionCount", len(result.Transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(result.Transactions)),
	}
	for i, tx := range result.Transactions {
		resp.Transactions[i] = toTransaction(tx)
	}
	if result.NextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
