package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

const percentageScale = 4

var hundred = decimal.NewFromInt(100)

// BudgetComparison is the budget-vs-actual view of one allocation.
type BudgetComparison struct {
	CategoryID     int64
	CategoryName   string
	BudgetedAmount decimal.Decimal
	ActualSpent    decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed float64
}

// BudgetService handles allocation reads and the budget-vs-actual report.
type BudgetService struct {
	storage storage.Storage
	now     func() time.Time
}

func NewBudgetService(store storage.Storage, now func() time.Time) *BudgetService {
	return &BudgetService{storage: store, now: now}
}

func (s *BudgetService) GetAllocation(ctx context.Context, id int64) (*budget.Allocation, error) {
	return s.storage.Read().Budgets.FindByID(ctx, id)
}

func (s *BudgetService) GetAllocationByCategory(ctx context.Context, categoryID int64) (*budget.Allocation, error) {
	return s.storage.Read().Budgets.FindByCategoryID(ctx, categoryID)
}

func (s *BudgetService) ListAllocations(ctx context.Context) ([]*budget.Allocation, error) {
	return s.storage.Read().Budgets.List(ctx)
}

func (s *BudgetService) GetTotalBudget(ctx context.Context) (decimal.Decimal, error) {
	allocations, err := s.storage.Read().Budgets.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, allocation := range allocations {
		total = total.Add(allocation.AllocatedAmount)
	}
	return total, nil
}

// GetBudgetComparison reports every allocation against what was recorded in
// its category between start and end inclusive. Actual spend counts every
// transaction type, transfer legs and income included.
func (s *BudgetService) GetBudgetComparison(ctx context.Context, start, end civil.Date) ([]*BudgetComparison, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	reader := s.storage.Read()

	allocations, err := reader.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := reader.Transactions.SumByCategory(ctx, &transaction.SumFilter{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}
	actualByCategory := make(map[int64]decimal.Decimal, len(totals))
	for _, total := range totals {
		actualByCategory[total.CategoryID] = total.Total
	}

	comparisons := make([]*BudgetComparison, 0, len(allocations))
	for _, allocation := range allocations {
		cat, err := reader.Categories.FindByID(ctx, allocation.CategoryID)
		if err != nil {
			return nil, err
		}

		actual := actualByCategory[allocation.CategoryID]
		comparisons = append(comparisons, &BudgetComparison{
			CategoryID:     allocation.CategoryID,
			CategoryName:   cat.Name,
			BudgetedAmount: allocation.AllocatedAmount,
			ActualSpent:    actual,
			Remaining:      allocation.AllocatedAmount.Sub(actual),
			PercentageUsed: percentageUsed(actual, allocation.AllocatedAmount),
		})
	}
	return comparisons, nil
}

func (s *BudgetService) GetCurrentMonthBudgetComparison(ctx context.Context) ([]*BudgetComparison, error) {
	start, end := currentMonth(s.now())
	return s.GetBudgetComparison(ctx, start, end)
}

// percentageUsed is actual/allocated rounded half-up to 4 places, times 100.
func percentageUsed(actual, allocated decimal.Decimal) float64 {
	if !allocated.IsPositive() {
		return 0
	}
	return actual.DivRound(allocated, percentageScale).Mul(hundred).InexactFloat64()
}
