package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

// DeleteAccountHandler handles DELETE /v1/account/{id}.
type DeleteAccountHandler struct {
	Operator operatorProcessor
}

func NewDeleteAccountHandler(op operatorProcessor) *DeleteAccountHandler {
	return &DeleteAccountHandler{Operator: op}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/account/{id}",
		Summary:       "Delete an account",
		Description:   "Deletes an account that has no transactions.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountPathInput) (*struct{}, error) {
	if err := h.Operator.Process(ctx, &actions.DeleteAccount{ID: input.ID}); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to delete account")
	}
	return nil, nil
}
