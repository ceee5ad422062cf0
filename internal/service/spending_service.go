package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// MonthlySpending is the expense total of one category over a period.
type MonthlySpending struct {
	CategoryID   int64
	CategoryName string
	TotalSpent   decimal.Decimal
}

// SpendingService aggregates expenses by category.
type SpendingService struct {
	storage storage.Storage
	now     func() time.Time
}

func NewSpendingService(store storage.Storage, now func() time.Time) *SpendingService {
	return &SpendingService{storage: store, now: now}
}

// GetMonthlySpending sums expense transactions per category between start and
// end inclusive, ordered by category id. Categories without expenses are omitted.
func (s *SpendingService) GetMonthlySpending(ctx context.Context, start, end civil.Date) ([]*MonthlySpending, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	reader := s.storage.Read()

	expense := transaction.TransactionTypeExpense
	totals, err := reader.Transactions.SumByCategory(ctx, &transaction.SumFilter{
		StartDate: start,
		EndDate:   end,
		Type:      &expense,
	})
	if err != nil {
		return nil, err
	}

	spending := make([]*MonthlySpending, 0, len(totals))
	for _, total := range totals {
		cat, err := reader.Categories.FindByID(ctx, total.CategoryID)
		if err != nil {
			return nil, err
		}
		spending = append(spending, &MonthlySpending{
			CategoryID:   total.CategoryID,
			CategoryName: cat.Name,
			TotalSpent:   total.Total,
		})
	}
	return spending, nil
}

func (s *SpendingService) GetCurrentMonthSpending(ctx context.Context) ([]*MonthlySpending, error) {
	start, end := currentMonth(s.now())
	return s.GetMonthlySpending(ctx, start, end)
}
