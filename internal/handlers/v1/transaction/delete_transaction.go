package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

type DeleteTransactionOutput struct {
	Body struct {
		Deleted []int64 `json:"deleted" doc:"Ids of the deleted transactions; both legs for a transfer"`
	}
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	Operator operatorProcessor
}

func NewDeleteTransactionHandler(op operatorProcessor) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Operator: op}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction and reverses its balance effect. Deleting either transfer leg deletes the whole transfer.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionPathInput) (*DeleteTransactionOutput, error) {
	action := &actions.DeleteTransaction{ID: input.ID}
	err := apierror.Timed(ctx, "deleteTransactionMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to delete transaction")
	}

	out := &DeleteTransactionOutput{}
	out.Body.Deleted = make([]int64, len(action.Deleted))
	for i, tx := range action.Deleted {
		out.Body.Deleted[i] = tx.ID
	}
	return out, nil
}
