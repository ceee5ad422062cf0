package report

import (
	"context"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/params"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// CategorySpending is one row of the spending report.
type CategorySpending struct {
	CategoryID   int64  `json:"categoryId" doc:"Category id"`
	CategoryName string `json:"categoryName" doc:"Category name"`
	TotalSpent   string `json:"totalSpent" doc:"Sum of expenses in the category over the period"`
}

type SpendingInput struct {
	StartDate string `query:"startDate" doc:"First day of the period (YYYY-MM-DD)"`
	EndDate   string `query:"endDate" doc:"Last day of the period (YYYY-MM-DD)"`
}

type SpendingOutput struct {
	Body struct {
		Spending []CategorySpending `json:"spending" doc:"Categories with expenses, ordered by category id"`
	}
}

type spendingReader interface {
	GetMonthlySpending(ctx context.Context, start, end civil.Date) ([]*service.MonthlySpending, error)
	GetCurrentMonthSpending(ctx context.Context) ([]*service.MonthlySpending, error)
}

// SpendingHandler handles GET /v1/reports/spending.
type SpendingHandler struct {
	SpendingService spendingReader
}

func NewSpendingHandler(svc spendingReader) *SpendingHandler {
	return &SpendingHandler{SpendingService: svc}
}

func (h *SpendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-spending",
		Method:      http.MethodGet,
		Path:        "/v1/reports/spending",
		Summary:     "Spending by category",
		Description: "Sums expenses per category over the period. Income and transfers are excluded. Without dates the current month is used.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *SpendingHandler) handle(ctx context.Context, input *SpendingInput) (*SpendingOutput, error) {
	var spending []*service.MonthlySpending
	var err error
	if input.StartDate == "" && input.EndDate == "" {
		spending, err = h.SpendingService.GetCurrentMonthSpending(ctx)
	} else {
		start, end, parseErr := params.ParsePeriod(input.StartDate, input.EndDate)
		if parseErr != nil {
			return nil, parseErr
		}
		spending, err = h.SpendingService.GetMonthlySpending(ctx, start, end)
	}
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get spending")
	}

	apierror.AddData(ctx, "categoryCount", len(spending))

	out := &SpendingOutput{}
	out.Body.Spending = make([]CategorySpending, len(spending))
	for i, s := range spending {
		out.Body.Spending[i] = CategorySpending{
			CategoryID:   s.CategoryID,
			CategoryName: s.CategoryName,
			TotalSpent:   s.TotalSpent.StringFixed(2),
		}
	}
	return out, nil
}
