package budget

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/params"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// Comparison is one row of the budget-vs-actual report.
type Comparison struct {
	CategoryID     int64   `json:"categoryId" doc:"Category id"`
	CategoryName   string  `json:"categoryName" doc:"Category name"`
	BudgetedAmount string  `json:"budgetedAmount" doc:"Allocated amount"`
	ActualSpent    string  `json:"actualSpent" doc:"Sum of every transaction in the category over the period"`
	Remaining      string  `json:"remaining" doc:"Budgeted minus actual, negative when overspent"`
	PercentageUsed float64 `json:"percentageUsed" doc:"Actual over budgeted as a percentage, 0 when nothing is budgeted"`
}

type ComparisonInput struct {
	StartDate string `query:"startDate" doc:"First day of the period (YYYY-MM-DD)"`
	EndDate   string `query:"endDate" doc:"Last day of the period (YYYY-MM-DD)"`
}

type ComparisonOutput struct {
	Body struct {
		Comparisons []Comparison `json:"comparisons" doc:"One row per allocation, ordered by category id"`
	}
}

func (h *Handlers) comparison(ctx context.Context, input *ComparisonInput) (*ComparisonOutput, error) {
	var comparisons []*service.BudgetComparison
	var err error
	if input.StartDate == "" && input.EndDate == "" {
		comparisons, err = h.BudgetService.GetCurrentMonthBudgetComparison(ctx)
	} else {
		var start, end civil.Date
		start, end, err = params.ParsePeriod(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		comparisons, err = h.BudgetService.GetBudgetComparison(ctx, start, end)
	}
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to compare budgets")
	}

	out := &ComparisonOutput{}
	out.Body.Comparisons = make([]Comparison, len(comparisons))
	for i, c := range comparisons {
		out.Body.Comparisons[i] = Comparison{
			CategoryID:     c.CategoryID,
			CategoryName:   c.CategoryName,
			BudgetedAmount: c.BudgetedAmount.StringFixed(2),
			ActualSpent:    c.ActualSpent.StringFixed(2),
			Remaining:      c.Remaining.StringFixed(2),
			PercentageUsed: c.PercentageUsed,
		}
	}
	return out, nil
}
