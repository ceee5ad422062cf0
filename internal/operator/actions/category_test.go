package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
)

func TestCreateCategory_DuplicateName(t *testing.T) {
	f := newFixture(t, "0")

	err := run(t, f.store, &CreateCategory{Name: "Food", Type: category.CategoryTypeExpense})

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCreateCategory_MissingParent(t *testing.T) {
	f := newFixture(t, "0")
	parent := int64(404)

	err := run(t, f.store, &CreateCategory{Name: "Snacks", Type: category.CategoryTypeExpense, ParentID: &parent})

	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))
}

func TestCreateCategory_BadColor(t *testing.T) {
	f := newFixture(t, "0")

	err := run(t, f.store, &CreateCategory{Name: "Snacks", Type: category.CategoryTypeExpense, ColorCode: "red"})

	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdateCategory(t *testing.T) {
	f := newFixture(t, "0")

	action := &UpdateCategory{ID: f.food, Name: "Groceries", Type: category.CategoryTypeExpense, ColorCode: "#00ff00"}
	require.NoError(t, run(t, f.store, action))
	assert.Equal(t, "Groceries", action.Updated.Name)

	// Keeping its own name is not a conflict.
	require.NoError(t, run(t, f.store, &UpdateCategory{ID: f.food, Name: "Groceries", Type: category.CategoryTypeExpense}))

	err := run(t, f.store, &UpdateCategory{ID: f.food, Name: "Salary", Type: category.CategoryTypeExpense})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	self := f.food
	err = run(t, f.store, &UpdateCategory{ID: f.food, Name: "Groceries", Type: category.CategoryTypeExpense, ParentID: &self})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdateCategory_RejectsCycle(t *testing.T) {
	f := newFixture(t, "0")
	food := f.food
	child := &CreateCategory{Name: "Restaurants", Type: category.CategoryTypeExpense, ParentID: &food}
	require.NoError(t, run(t, f.store, child))
	restaurants := child.Created.ID
	grandchild := &CreateCategory{Name: "Takeaway", Type: category.CategoryTypeExpense, ParentID: &restaurants}
	require.NoError(t, run(t, f.store, grandchild))
	takeaway := grandchild.Created.ID

	for _, parent := range []int64{restaurants, takeaway} {
		parent := parent
		err := run(t, f.store, &UpdateCategory{ID: f.food, Name: "Food", Type: category.CategoryTypeExpense, ParentID: &parent})
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	}

	stored, err := f.store.Read().Categories.FindByID(context.Background(), f.food)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)

	// Moving a leaf under an unrelated branch is fine.
	salary := f.salary
	require.NoError(t, run(t, f.store, &UpdateCategory{ID: takeaway, Name: "Takeaway", Type: category.CategoryTypeExpense, ParentID: &salary}))
}

func TestDeleteCategory_WithSubcategoriesIsConflict(t *testing.T) {
	f := newFixture(t, "0")
	parent := f.food
	require.NoError(t, run(t, f.store, &CreateCategory{Name: "Restaurants", Type: category.CategoryTypeExpense, ParentID: &parent}))

	err := run(t, f.store, &DeleteCategory{ID: f.food})

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	exists, err := f.store.Read().Categories.Exists(context.Background(), f.food)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteCategory_UsedByTransactionIsConflict(t *testing.T) {
	f := newFixture(t, "10.00")
	f.expense(t, f.checking, "1.00")

	err := run(t, f.store, &DeleteCategory{ID: f.food})

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestDeleteCategory(t *testing.T) {
	f := newFixture(t, "0")

	require.NoError(t, run(t, f.store, &DeleteCategory{ID: f.salary}))

	exists, err := f.store.Read().Categories.Exists(context.Background(), f.salary)
	require.NoError(t, err)
	assert.False(t, exists)

	err = run(t, f.store, &DeleteCategory{ID: f.salary})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
