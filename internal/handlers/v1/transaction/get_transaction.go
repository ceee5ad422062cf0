package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

type transactionGetter interface {
	GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionPathInput) (*TransactionOutput, error) {
	tx, err := h.TransactionService.GetTransaction(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get transaction")
	}
	return &TransactionOutput{Body: toTransaction(tx)}, nil
}
