package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

type transactionTable struct {
	store *Store
	inTx  bool
}

func (t *transactionTable) FindByID(_ context.Context, id int64) (*transaction.Transaction, error) {
	defer t.store.lock(t.inTx)()

	found, ok := t.store.state.transactions[id]
	if !ok {
		return nil, apperrors.NotFound("transaction", id)
	}
	return &found, nil
}

func (t *transactionTable) List(_ context.Context, filter *transaction.TransactionFilter) (*transaction.TransactionListResult, error) {
	defer t.store.lock(t.inTx)()

	if filter == nil {
		filter = &transaction.TransactionFilter{}
	}

	var matches []*transaction.Transaction
	for _, txn := range t.store.state.transactions {
		if !matchesFilter(&txn, filter) {
			continue
		}
		found := txn
		matches = append(matches, &found)
	}
	sort.Slice(matches, func(i, j int) bool {
		if c := matches[i].Date.Compare(matches[j].Date); c != 0 {
			return c > 0
		}
		return matches[i].ID > matches[j].ID
	})

	result, more := page(matches, filter.Limit, filter.Offset)
	var nextCursor *transaction.TransactionCursor
	if more {
		nextCursor = &transaction.TransactionCursor{Position: filter.Offset + filter.Limit, Limit: filter.Limit}
	}
	return &transaction.TransactionListResult{Transactions: result, NextCursor: nextCursor}, nil
}

func matchesFilter(txn *transaction.Transaction, filter *transaction.TransactionFilter) bool {
	if filter.AccountID != nil && txn.AccountID != *filter.AccountID {
		return false
	}
	if filter.CategoryID != nil && txn.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.Type != nil && txn.Type != *filter.Type {
		return false
	}
	if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (t *transactionTable) FindByTransferReference(_ context.Context, referenceID string) ([]*transaction.Transaction, error) {
	defer t.store.lock(t.inTx)()

	var legs []*transaction.Transaction
	for _, txn := range t.store.state.transactions {
		if txn.TransferReferenceID == referenceID {
			found := txn
			legs = append(legs, &found)
		}
	}
	sort.Slice(legs, func(i, j int) bool { return legs[i].TransferDirection < legs[j].TransferDirection })
	return legs, nil
}

func (t *transactionTable) SumByCategory(_ context.Context, filter *transaction.SumFilter) ([]*transaction.CategoryTotal, error) {
	defer t.store.lock(t.inTx)()

	totals := make(map[int64]decimal.Decimal)
	for _, txn := range t.store.state.transactions {
		if txn.Date.Before(filter.StartDate) || txn.Date.After(filter.EndDate) {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
	}

	result := make([]*transaction.CategoryTotal, 0, len(totals))
	for categoryID, total := range totals {
		result = append(result, &transaction.CategoryTotal{CategoryID: categoryID, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryID < result[j].CategoryID })
	return result, nil
}

func (t *transactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	st := t.store.state
	if err := checkTransactionRefs(st, create.AccountID, create.CategoryID); err != nil {
		return nil, err
	}
	now := t.store.now()

	st.lastTransactionID++
	created := transaction.Transaction{
		ID:                  st.lastTransactionID,
		AccountID:           create.AccountID,
		CategoryID:          create.CategoryID,
		Amount:              create.Amount,
		Type:                create.Type,
		Date:                create.Date,
		Description:         create.Description,
		Notes:               create.Notes,
		TransferReferenceID: create.TransferReferenceID,
		TransferDirection:   create.TransferDirection,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	st.transactions[created.ID] = created
	return &created, nil
}

func (t *transactionTable) Update(_ context.Context, id int64, update *transaction.TransactionUpdate) (*transaction.Transaction, error) {
	st := t.store.state
	found, ok := st.transactions[id]
	if !ok {
		return nil, apperrors.NotFound("transaction", id)
	}
	if err := checkTransactionRefs(st, update.AccountID, update.CategoryID); err != nil {
		return nil, err
	}

	found.AccountID = update.AccountID
	found.CategoryID = update.CategoryID
	found.Amount = update.Amount
	found.Type = update.Type
	found.Date = update.Date
	found.Description = update.Description
	found.Notes = update.Notes
	found.UpdatedAt = t.store.now()
	st.transactions[id] = found
	return &found, nil
}

func (t *transactionTable) Delete(_ context.Context, id int64) error {
	delete(t.store.state.transactions, id)
	return nil
}

// checkTransactionRefs mirrors the foreign keys on the transactions table.
func checkTransactionRefs(st *state, accountID, categoryID int64) error {
	if _, ok := st.accounts[accountID]; !ok {
		return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "transaction", Message: "account reference violates foreign key"}
	}
	if _, ok := st.categories[categoryID]; !ok {
		return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "transaction", Message: "category reference violates foreign key"}
	}
	return nil
}
