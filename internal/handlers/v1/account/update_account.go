package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

// UpdateAccountBody is the request body for updating an account. The balance
// cannot be set here.
type UpdateAccountBody struct {
	Name     string `json:"name" minLength:"1" maxLength:"100" doc:"Account name"`
	Type     string `json:"type" enum:"savings,checking,credit_card,fixed_deposit,cash" doc:"Account type"`
	IsActive bool   `json:"isActive" doc:"Whether the account is active"`
}

type UpdateAccountInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Account id"`
	Body UpdateAccountBody
}

// UpdateAccountHandler handles PUT /v1/account/{id}.
type UpdateAccountHandler struct {
	Operator operatorProcessor
}

func NewUpdateAccountHandler(op operatorProcessor) *UpdateAccountHandler {
	return &UpdateAccountHandler{Operator: op}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}",
		Summary:     "Update an account",
		Description: "Changes the name, type or active flag of an account.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	accountType, err := parseAccountType(input.Body.Type)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateAccount{
		ID:       input.ID,
		Name:     input.Body.Name,
		Type:     accountType,
		IsActive: input.Body.IsActive,
	}
	err = apierror.Timed(ctx, "updateAccountMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to update account")
	}
	return &AccountOutput{Body: toAccount(action.Updated)}, nil
}

// DeactivateAccountHandler handles POST /v1/account/{id}/deactivate.
type DeactivateAccountHandler struct {
	Operator operatorProcessor
}

func NewDeactivateAccountHandler(op operatorProcessor) *DeactivateAccountHandler {
	return &DeactivateAccountHandler{Operator: op}
}

func (h *DeactivateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deactivate-account",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/deactivate",
		Summary:     "Deactivate an account",
		Description: "Marks an account inactive. Its transactions are kept.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeactivateAccountHandler) handle(ctx context.Context, input *AccountPathInput) (*AccountOutput, error) {
	action := &actions.DeactivateAccount{ID: input.ID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to deactivate account")
	}
	return &AccountOutput{Body: toAccount(action.Updated)}, nil
}
