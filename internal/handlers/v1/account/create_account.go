package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" maxLength:"100" doc:"Account name"`
	Type           string `json:"type" enum:"savings,checking,credit_card,fixed_deposit,cash" doc:"Account type"`
	InitialBalance string `json:"initialBalance,omitempty" doc:"Opening balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator operatorProcessor
}

func NewCreateAccountHandler(op operatorProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Opens an active account whose balance starts at the initial balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	accountType, err := parseAccountType(input.Body.Type)
	if err != nil {
		return nil, err
	}
	initialBalance, err := parseMoney("initialBalance", input.Body.InitialBalance)
	if err != nil {
		return nil, err
	}

	return &actions.CreateAccount{
		Name:           input.Body.Name,
		Type:           accountType,
		InitialBalance: initialBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	err = apierror.Timed(ctx, "createAccountMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to create account")
	}

	apierror.AddData(ctx, "accountID", action.Created.ID)
	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   toAccount(action.Created),
	}, nil
}
