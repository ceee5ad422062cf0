package service

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// TransactionService handles transaction reads.
type TransactionService struct {
	storage storage.Storage
}

func NewTransactionService(store storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return s.storage.Read().Transactions.FindByID(ctx, id)
}

// ListTransactions returns a page of transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, filter *transaction.TransactionFilter) (*transaction.TransactionListResult, error) {
	if filter == nil {
		filter = &transaction.TransactionFilter{}
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		if err := validateRange(*filter.StartDate, *filter.EndDate); err != nil {
			return nil, err
		}
	}
	paged := *filter
	paged.Limit = normalizeLimit(filter.Limit)
	return s.storage.Read().Transactions.List(ctx, &paged)
}

// GetTransfer returns both legs of a transfer, outgoing first.
func (s *TransactionService) GetTransfer(ctx context.Context, referenceID string) ([]*transaction.Transaction, error) {
	legs, err := s.storage.Read().Transactions.FindByTransferReference(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return nil, apperrors.NotFound("transfer", referenceID)
	}
	return legs, nil
}
