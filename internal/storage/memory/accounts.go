package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
)

type accountTable struct {
	store *Store
	inTx  bool
}

func (t *accountTable) FindByID(_ context.Context, id int64) (*account.Account, error) {
	defer t.store.lock(t.inTx)()

	found, ok := t.store.state.accounts[id]
	if !ok {
		return nil, apperrors.NotFound("account", id)
	}
	return &found, nil
}

// FindByIDForUpdate needs no row lock: the unit of work already excludes every other writer.
func (t *accountTable) FindByIDForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	return t.FindByID(ctx, id)
}

func (t *accountTable) List(_ context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	defer t.store.lock(t.inTx)()

	if filter == nil {
		filter = &account.AccountFilter{}
	}

	var matches []*account.Account
	for _, a := range t.store.state.accounts {
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		found := a
		matches = append(matches, &found)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	result, more := page(matches, filter.Limit, filter.Offset)
	var nextCursor *account.AccountCursor
	if more {
		nextCursor = &account.AccountCursor{Position: filter.Offset + filter.Limit, Limit: filter.Limit}
	}
	return &account.AccountListResult{Accounts: result, NextCursor: nextCursor}, nil
}

func (t *accountTable) Create(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	st := t.store.state
	now := t.store.now()

	st.lastAccountID++
	created := account.Account{
		ID:              st.lastAccountID,
		Name:            create.Name,
		Type:            create.Type,
		Balance:         create.StartingBalance,
		StartingBalance: create.StartingBalance,
		IsActive:        create.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	st.accounts[created.ID] = created
	return &created, nil
}

func (t *accountTable) Update(_ context.Context, id int64, update *account.AccountUpdate) (*account.Account, error) {
	st := t.store.state
	found, ok := st.accounts[id]
	if !ok {
		return nil, apperrors.NotFound("account", id)
	}

	found.Name = update.Name
	found.Type = update.Type
	found.IsActive = update.IsActive
	found.UpdatedAt = t.store.now()
	st.accounts[id] = found
	return &found, nil
}

func (t *accountTable) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	st := t.store.state
	found, ok := st.accounts[id]
	if !ok {
		return apperrors.NotFound("account", id)
	}

	found.Balance = balance
	found.UpdatedAt = t.store.now()
	st.accounts[id] = found
	return nil
}

func (t *accountTable) Delete(_ context.Context, id int64) error {
	st := t.store.state
	for _, txn := range st.transactions {
		if txn.AccountID == id {
			return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "account", ID: id, Message: "referenced by other records"}
		}
	}
	delete(st.accounts, id)
	return nil
}
