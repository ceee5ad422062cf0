package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
)

type budgetTable struct {
	store *Store
	inTx  bool
}

func (t *budgetTable) FindByID(_ context.Context, id int64) (*budget.Allocation, error) {
	defer t.store.lock(t.inTx)()

	found, ok := t.store.state.budgets[id]
	if !ok {
		return nil, apperrors.NotFound("budget allocation", id)
	}
	return &found, nil
}

func (t *budgetTable) FindByCategoryID(_ context.Context, categoryID int64) (*budget.Allocation, error) {
	defer t.store.lock(t.inTx)()

	for _, b := range t.store.state.budgets {
		if b.CategoryID == categoryID {
			found := b
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("budget allocation for category", categoryID)
}

func (t *budgetTable) List(_ context.Context) ([]*budget.Allocation, error) {
	defer t.store.lock(t.inTx)()

	result := make([]*budget.Allocation, 0, len(t.store.state.budgets))
	for _, b := range t.store.state.budgets {
		found := b
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (t *budgetTable) Insert(_ context.Context, categoryID int64, amount decimal.Decimal) (*budget.Allocation, error) {
	st := t.store.state
	if _, ok := st.categories[categoryID]; !ok {
		return nil, &apperrors.Error{Kind: apperrors.KindConflict, Entity: "budget allocation", Message: "category reference violates foreign key"}
	}
	for _, b := range st.budgets {
		if b.CategoryID == categoryID {
			return nil, &apperrors.Error{Kind: apperrors.KindConflict, Entity: "budget allocation", Message: "already exists"}
		}
	}
	now := t.store.now()

	st.lastBudgetID++
	created := budget.Allocation{
		ID:              st.lastBudgetID,
		CategoryID:      categoryID,
		AllocatedAmount: amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	st.budgets[created.ID] = created
	return &created, nil
}

func (t *budgetTable) UpdateAmount(_ context.Context, id int64, amount decimal.Decimal) (*budget.Allocation, error) {
	st := t.store.state
	found, ok := st.budgets[id]
	if !ok {
		return nil, apperrors.NotFound("budget allocation", id)
	}

	found.AllocatedAmount = amount
	found.UpdatedAt = t.store.now()
	st.budgets[id] = found
	return &found, nil
}

func (t *budgetTable) Delete(_ context.Context, id int64) error {
	delete(t.store.state.budgets, id)
	return nil
}
