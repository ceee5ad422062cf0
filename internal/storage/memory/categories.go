package memory

import (
	"context"
	"sort"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
)

type categoryTable struct {
	store *Store
	inTx  bool
}

func (t *categoryTable) FindByID(_ context.Context, id int64) (*category.Category, error) {
	defer t.store.lock(t.inTx)()

	found, ok := t.store.state.categories[id]
	if !ok {
		return nil, apperrors.NotFound("category", id)
	}
	return &found, nil
}

func (t *categoryTable) FindByName(_ context.Context, name string) (*category.Category, error) {
	defer t.store.lock(t.inTx)()

	for _, c := range t.store.state.categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("category", name)
}

func (t *categoryTable) Exists(_ context.Context, id int64) (bool, error) {
	defer t.store.lock(t.inTx)()

	_, ok := t.store.state.categories[id]
	return ok, nil
}

func (t *categoryTable) List(_ context.Context, filter *category.CategoryFilter) ([]*category.Category, error) {
	defer t.store.lock(t.inTx)()

	if filter == nil {
		filter = &category.CategoryFilter{}
	}

	result := []*category.Category{}
	for _, c := range t.store.state.categories {
		if filter.Type != nil && c.Type != *filter.Type {
			continue
		}
		if filter.ParentID != nil && (c.ParentID == nil || *c.ParentID != *filter.ParentID) {
			continue
		}
		if filter.TopLevelOnly && c.ParentID != nil {
			continue
		}
		found := c
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (t *categoryTable) Insert(_ context.Context, create *category.CategoryCreate) (*category.Category, error) {
	st := t.store.state
	if err := checkCategoryConstraints(st, 0, create.Name, create.ParentID); err != nil {
		return nil, err
	}

	st.lastCategoryID++
	created := category.Category{
		ID:        st.lastCategoryID,
		Name:      create.Name,
		Type:      create.Type,
		ParentID:  copyID(create.ParentID),
		ColorCode: create.ColorCode,
		CreatedAt: t.store.now(),
	}
	st.categories[created.ID] = created
	return &created, nil
}

func (t *categoryTable) Update(_ context.Context, id int64, update *category.CategoryUpdate) (*category.Category, error) {
	st := t.store.state
	found, ok := st.categories[id]
	if !ok {
		return nil, apperrors.NotFound("category", id)
	}
	if err := checkCategoryConstraints(st, id, update.Name, update.ParentID); err != nil {
		return nil, err
	}

	found.Name = update.Name
	found.Type = update.Type
	found.ParentID = copyID(update.ParentID)
	found.ColorCode = update.ColorCode
	st.categories[id] = found
	return &found, nil
}

func (t *categoryTable) Delete(_ context.Context, id int64) error {
	st := t.store.state
	referenced := false
	for _, c := range st.categories {
		if c.ParentID != nil && *c.ParentID == id {
			referenced = true
		}
	}
	for _, txn := range st.transactions {
		if txn.CategoryID == id {
			referenced = true
		}
	}
	for _, b := range st.budgets {
		if b.CategoryID == id {
			referenced = true
		}
	}
	if referenced {
		return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "category", ID: id, Message: "referenced by other records"}
	}

	delete(st.categories, id)
	return nil
}

// checkCategoryConstraints mirrors the unique name and parent foreign key.
func checkCategoryConstraints(st *state, selfID int64, name string, parentID *int64) error {
	for _, c := range st.categories {
		if c.Name == name && c.ID != selfID {
			return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "category", Message: "already exists"}
		}
	}
	if parentID != nil {
		if _, ok := st.categories[*parentID]; !ok {
			return &apperrors.Error{Kind: apperrors.KindConflict, Entity: "category", Message: "parent reference violates foreign key"}
		}
	}
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
