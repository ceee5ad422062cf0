package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

type UpdateTransactionInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Transaction id"`
	Body CreateTransactionBody
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}. Transfer legs
// cannot be edited.
type UpdateTransactionHandler struct {
	Operator operatorProcessor
}

func NewUpdateTransactionHandler(op operatorProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction. The old effect is reversed and the new one applied in one step.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	parsed, err := parseCreateTransactionInput(&CreateTransactionInput{Body: input.Body})
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateTransaction{
		ID:          input.ID,
		AccountID:   parsed.AccountID,
		CategoryID:  parsed.CategoryID,
		Amount:      parsed.Amount,
		Type:        parsed.Type,
		Date:        parsed.Date,
		Description: parsed.Description,
		Notes:       parsed.Notes,
	}
	err = apierror.Timed(ctx, "updateTransactionMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to update transaction")
	}
	return &TransactionOutput{Body: toTransaction(action.Updated)}, nil
}
