package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

type accountGetter interface {
	GetAccount(ctx context.Context, id int64) (*account.Account, error)
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	acc, err := h.AccountService.GetAccount(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get account")
	}
	return &AccountOutput{Body: toAccount(acc)}, nil
}
