package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type TotalBalanceOutput struct {
	Body struct {
		TotalBalance string `json:"totalBalance" doc:"Sum of active account balances"`
	}
}

type totalBalanceGetter interface {
	GetTotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// TotalBalanceHandler handles GET /v1/accounts/total-balance.
type TotalBalanceHandler struct {
	AccountService totalBalanceGetter
}

func NewTotalBalanceHandler(svc totalBalanceGetter) *TotalBalanceHandler {
	return &TotalBalanceHandler{AccountService: svc}
}

func (h *TotalBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-total-balance",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/total-balance",
		Summary:     "Total balance",
		Description: "Sums the balances of all active accounts.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *TotalBalanceHandler) handle(ctx context.Context, _ *struct{}) (*TotalBalanceOutput, error) {
	total, err := h.AccountService.GetTotalBalance(ctx)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get total balance")
	}
	out := &TotalBalanceOutput{}
	out.Body.TotalBalance = total.StringFixed(2)
	return out, nil
}

// BalanceCheck is the API response model for a balance verification.
type BalanceCheck struct {
	AccountID  int64  `json:"accountId" doc:"Account id"`
	Stored     string `json:"stored" doc:"Balance currently stored on the account"`
	Recomputed string `json:"recomputed" doc:"Balance rebuilt from the starting balance and history"`
	Drift      string `json:"drift" doc:"Stored minus recomputed"`
	Consistent bool   `json:"consistent" doc:"Whether the stored balance matches history"`
}

type BalanceCheckOutput struct {
	Body BalanceCheck
}

type balanceVerifier interface {
	VerifyBalance(ctx context.Context, id int64) (*service.BalanceCheck, error)
}

// VerifyBalanceHandler handles GET /v1/account/{id}/verify.
type VerifyBalanceHandler struct {
	AccountService balanceVerifier
}

func NewVerifyBalanceHandler(svc balanceVerifier) *VerifyBalanceHandler {
	return &VerifyBalanceHandler{AccountService: svc}
}

func (h *VerifyBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "verify-account-balance",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/verify",
		Summary:     "Verify an account balance",
		Description: "Compares the stored balance with one rebuilt from history. Nothing is written.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *VerifyBalanceHandler) handle(ctx context.Context, input *AccountPathInput) (*BalanceCheckOutput, error) {
	check, err := h.AccountService.VerifyBalance(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to verify balance")
	}
	if !check.Consistent() {
		apierror.AddData(ctx, "balanceDrift", check.Drift.String())
	}

	return &BalanceCheckOutput{Body: BalanceCheck{
		AccountID:  check.AccountID,
		Stored:     check.Stored.StringFixed(2),
		Recomputed: check.Recomputed.StringFixed(2),
		Drift:      check.Drift.StringFixed(2),
		Consistent: check.Consistent(),
	}}, nil
}

type RecomputeBalanceOutput struct {
	Body struct {
		AccountID int64  `json:"accountId" doc:"Account id"`
		Previous  string `json:"previous" doc:"Balance before recomputation"`
		Balance   string `json:"balance" doc:"Balance after recomputation"`
	}
}

// RecomputeBalanceHandler handles POST /v1/account/{id}/recompute.
type RecomputeBalanceHandler struct {
	Operator operatorProcessor
}

func NewRecomputeBalanceHandler(op operatorProcessor) *RecomputeBalanceHandler {
	return &RecomputeBalanceHandler{Operator: op}
}

func (h *RecomputeBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recompute-account-balance",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/recompute",
		Summary:     "Recompute an account balance",
		Description: "Rebuilds the stored balance from the starting balance and every transaction of the account.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *RecomputeBalanceHandler) handle(ctx context.Context, input *AccountPathInput) (*RecomputeBalanceOutput, error) {
	action := &actions.RecomputeBalance{AccountID: input.ID}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to recompute balance")
	}

	out := &RecomputeBalanceOutput{}
	out.Body.AccountID = input.ID
	out.Body.Previous = action.Previous.StringFixed(2)
	out.Body.Balance = action.Balance.StringFixed(2)
	return out, nil
}
