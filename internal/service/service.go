package service

import (
	"time"

	"github.com/carson-networks/expense-tracker/internal/storage"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service holds the read-side services. Writes go through the operator.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Category    *CategoryService
	Budget      *BudgetService
	Spending    *SpendingService
}

func NewService(store storage.Storage) *Service {
	return &Service{
		Account:     NewAccountService(store),
		Transaction: NewTransactionService(store),
		Category:    NewCategoryService(store),
		Budget:      NewBudgetService(store, time.Now),
		Spending:    NewSpendingService(store, time.Now),
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
