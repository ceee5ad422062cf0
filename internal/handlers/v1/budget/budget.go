package budget

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
)

// Allocation is the API response model for a budget allocation.
type Allocation struct {
	ID              int64  `json:"id" doc:"Allocation id"`
	CategoryID      int64  `json:"categoryId" doc:"Category id"`
	AllocatedAmount string `json:"allocatedAmount" doc:"Decimal amount budgeted for the category"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt       string `json:"updatedAt" doc:"RFC3339 last update time"`
}

type AllocationOutput struct {
	Body Allocation
}

type operatorProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type budgetReader interface {
	GetAllocation(ctx context.Context, id int64) (*budget.Allocation, error)
	ListAllocations(ctx context.Context) ([]*budget.Allocation, error)
	GetTotalBudget(ctx context.Context) (decimal.Decimal, error)
	GetBudgetComparison(ctx context.Context, start, end civil.Date) ([]*service.BudgetComparison, error)
	GetCurrentMonthBudgetComparison(ctx context.Context) ([]*service.BudgetComparison, error)
}

// Handlers serves the budget endpoints.
type Handlers struct {
	Operator      operatorProcessor
	BudgetService budgetReader
}

func NewHandlers(op operatorProcessor, svc budgetReader) *Handlers {
	return &Handlers{Operator: op, BudgetService: svc}
}

func (h *Handlers) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-category-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/category/{categoryId}",
		Summary:     "Set a category budget",
		Description: "Creates the category's allocation or replaces its amount.",
		Tags:        []string{"Budgets"},
	}, h.set)
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create a budget allocation",
		Description: "Fails with a conflict when the category already has an allocation.",
		Tags:        []string{"Budgets"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budget allocations",
		Tags:        []string{"Budgets"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-total-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budgets/total",
		Summary:     "Total budget",
		Tags:        []string{"Budgets"},
	}, h.total)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-comparison",
		Method:      http.MethodGet,
		Path:        "/v1/budgets/comparison",
		Summary:     "Budget versus actual",
		Description: "Compares every allocation with what was recorded in its category over the period. Without dates the current month is used.",
		Tags:        []string{"Budgets"},
	}, h.comparison)
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Get a budget allocation",
		Tags:        []string{"Budgets"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget/{id}",
		Summary:     "Update a budget allocation",
		Tags:        []string{"Budgets"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          "/v1/budget/{id}",
		Summary:       "Delete a budget allocation",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

type AmountBody struct {
	Amount string `json:"amount" minLength:"1" doc:"Non-negative decimal amount"`
}

type SetBudgetInput struct {
	CategoryID int64 `path:"categoryId" minimum:"1" doc:"Category id"`
	Body       AmountBody
}

func (h *Handlers) set(ctx context.Context, input *SetBudgetInput) (*AllocationOutput, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	action := &actions.SetBudgetAllocation{CategoryID: input.CategoryID, Amount: amount}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to set budget")
	}
	return &AllocationOutput{Body: toAllocation(action.Allocation)}, nil
}

type CreateBudgetInput struct {
	Body struct {
		CategoryID int64  `json:"categoryId" minimum:"1" doc:"Category id"`
		Amount     string `json:"amount" minLength:"1" doc:"Non-negative decimal amount"`
	}
}

type CreateBudgetOutput struct {
	Status int
	Body   Allocation
}

func (h *Handlers) create(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateBudgetAllocation{CategoryID: input.Body.CategoryID, Amount: amount}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to create budget")
	}
	return &CreateBudgetOutput{Status: http.StatusCreated, Body: toAllocation(action.Created)}, nil
}

type ListBudgetsOutput struct {
	Body struct {
		Allocations []Allocation `json:"allocations" doc:"Allocations ordered by category id"`
	}
}

func (h *Handlers) list(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	allocations, err := h.BudgetService.ListAllocations(ctx)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to list budgets")
	}

	out := &ListBudgetsOutput{}
	out.Body.Allocations = make([]Allocation, len(allocations))
	for i, allocation := range allocations {
		out.Body.Allocations[i] = toAllocation(allocation)
	}
	return out, nil
}

type TotalBudgetOutput struct {
	Body struct {
		TotalBudget string `json:"totalBudget" doc:"Sum of every allocation"`
	}
}

func (h *Handlers) total(ctx context.Context, _ *struct{}) (*TotalBudgetOutput, error) {
	total, err := h.BudgetService.GetTotalBudget(ctx)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get total budget")
	}
	out := &TotalBudgetOutput{}
	out.Body.TotalBudget = total.StringFixed(2)
	return out, nil
}

type BudgetPathInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Allocation id"`
}

func (h *Handlers) get(ctx context.Context, input *BudgetPathInput) (*AllocationOutput, error) {
	allocation, err := h.BudgetService.GetAllocation(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get budget")
	}
	return &AllocationOutput{Body: toAllocation(allocation)}, nil
}

type UpdateBudgetInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Allocation id"`
	Body AmountBody
}

func (h *Handlers) update(ctx context.Context, input *UpdateBudgetInput) (*AllocationOutput, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateBudgetAllocation{ID: input.ID, Amount: amount}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to update budget")
	}
	return &AllocationOutput{Body: toAllocation(action.Updated)}, nil
}

func (h *Handlers) delete(ctx context.Context, input *BudgetPathInput) (*struct{}, error) {
	if err := h.Operator.Process(ctx, &actions.DeleteBudgetAllocation{ID: input.ID}); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to delete budget")
	}
	return nil, nil
}

func toAllocation(allocation *budget.Allocation) Allocation {
	return Allocation{
		ID:              allocation.ID,
		CategoryID:      allocation.CategoryID,
		AllocatedAmount: allocation.AllocatedAmount.StringFixed(2),
		CreatedAt:       allocation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       allocation.UpdatedAt.Format(time.RFC3339),
	}
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return amount, nil
}
