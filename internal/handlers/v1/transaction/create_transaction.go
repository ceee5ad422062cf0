package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID   int64  `json:"accountId" minimum:"1" doc:"Account id"`
	CategoryID  int64  `json:"categoryId" minimum:"1" doc:"Category id"`
	Amount      string `json:"amount" minLength:"1" doc:"Positive decimal amount"`
	Type        string `json:"type" enum:"expense,income" doc:"Transfers are created through /v1/transfer"`
	Date        string `json:"date,omitempty" format:"date" doc:"Calendar date (YYYY-MM-DD), defaults to today"`
	Description string `json:"description,omitempty" maxLength:"255" doc:"Description"`
	Notes       string `json:"notes,omitempty" doc:"Free-form notes"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator operatorProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op operatorProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records an expense or income and applies it to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}
	txType, err := parseTransactionType(input.Body.Type)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	return &actions.CreateTransaction{
		AccountID:   input.Body.AccountID,
		CategoryID:  input.Body.CategoryID,
		Amount:      amount,
		Type:        txType,
		Date:        date,
		Description: input.Body.Description,
		Notes:       input.Body.Notes,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	err = apierror.Timed(ctx, "createTransactionMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to create transaction")
	}

	apierror.AddData(ctx, "transactionID", action.Created.ID)
	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   toTransaction(action.Created),
	}, nil
}
