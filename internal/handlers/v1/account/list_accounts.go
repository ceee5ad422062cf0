package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	Position   int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit      int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
	Type       string `query:"type" doc:"Only accounts of this type"`
	ActiveOnly bool   `query:"activeOnly" doc:"Only active accounts"`
}

// ListAccountsCursor points at the next page.
type ListAccountsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts   []Account           `json:"accounts" doc:"Page of accounts"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns a paginated list of accounts ordered by id.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseListAccountsInput(input *ListAccountsInput) (*account.AccountFilter, error) {
	filter := &account.AccountFilter{
		ActiveOnly: input.ActiveOnly,
		Limit:      input.Limit,
		Offset:     input.Position,
	}
	if input.Type != "" {
		accountType, err := parseAccountType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &accountType
	}
	return filter, nil
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	filter, err := parseListAccountsInput(input)
	if err != nil {
		return nil, err
	}

	var result *account.AccountListResult
	err = apierror.Timed(ctx, "listAccountsMs", func() error {
		result, err = h.AccountService.ListAccounts(ctx, filter)
		return err
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to list accounts")
	}

	apierror.AddData(ctx, "accountCount", len(result.Accounts))

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(result.Accounts)),
	}
	for i, acc := range result.Accounts {
		resp.Accounts[i] = toAccount(acc)
	}
	if result.NextCursor != nil {
		resp.NextCursor = &ListAccountsCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}

	return &ListAccountsOutput{Body: resp}, nil
}
