package actions

import (
	"context"
	"regexp"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

var colorCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateCategory struct {
	Name      string
	Type      category.CategoryType
	ParentID  *int64
	ColorCode string

	Created *category.Category
	IAction
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateCategoryFields(c.Name, c.Type, c.ColorCode); err != nil {
		return err
	}
	if err := checkCategoryName(ctx, writer, c.Name, 0); err != nil {
		return err
	}
	if c.ParentID != nil {
		if err := requireCategory(ctx, writer, *c.ParentID); err != nil {
			return err
		}
	}

	created, err := writer.Category.Insert(ctx, &category.CategoryCreate{
		Name:      c.Name,
		Type:      c.Type,
		ParentID:  c.ParentID,
		ColorCode: c.ColorCode,
	})
	if err != nil {
		return err
	}

	c.Created = created
	return nil
}

type UpdateCategory struct {
	ID        int64
	Name      string
	Type      category.CategoryType
	ParentID  *int64
	ColorCode string

	Updated *category.Category
	IAction
}

func (u *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Category.FindByID(ctx, u.ID); err != nil {
		return err
	}
	if err := validateCategoryFields(u.Name, u.Type, u.ColorCode); err != nil {
		return err
	}
	if err := checkCategoryName(ctx, writer, u.Name, u.ID); err != nil {
		return err
	}
	if u.ParentID != nil {
		if *u.ParentID == u.ID {
			return apperrors.InvalidArgument("parentCategoryId", "a category cannot be its own parent")
		}
		if err := requireCategory(ctx, writer, *u.ParentID); err != nil {
			return err
		}
		if err := checkNotDescendant(ctx, writer, u.ID, *u.ParentID); err != nil {
			return err
		}
	}

	updated, err := writer.Category.Update(ctx, u.ID, &category.CategoryUpdate{
		Name:      u.Name,
		Type:      u.Type,
		ParentID:  u.ParentID,
		ColorCode: u.ColorCode,
	})
	if err != nil {
		return err
	}

	u.Updated = updated
	return nil
}

// DeleteCategory removes a category nothing depends on.
type DeleteCategory struct {
	ID int64
	IAction
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Category.FindByID(ctx, d.ID); err != nil {
		return err
	}

	categoryID := d.ID
	children, err := writer.Category.List(ctx, &category.CategoryFilter{ParentID: &categoryID})
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return apperrors.Conflict("category", "category has subcategories")
	}

	used, err := writer.Transaction.List(ctx, &transaction.TransactionFilter{CategoryID: &categoryID, Limit: 1})
	if err != nil {
		return err
	}
	if len(used.Transactions) > 0 {
		return apperrors.Conflict("category", "category is used by transactions")
	}

	_, err = writer.Budget.FindByCategoryID(ctx, d.ID)
	if err == nil {
		return apperrors.Conflict("category", "category has a budget allocation")
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return err
	}

	return writer.Category.Delete(ctx, d.ID)
}

// checkNotDescendant walks up from parentID and fails if it reaches id.
func checkNotDescendant(ctx context.Context, writer *storage.Writer, id, parentID int64) error {
	seen := map[int64]bool{}
	for next := &parentID; next != nil; {
		if *next == id {
			return apperrors.InvalidArgument("parentCategoryId", "a category cannot be nested under its own subcategory")
		}
		if seen[*next] {
			return nil
		}
		seen[*next] = true

		ancestor, err := writer.Category.FindByID(ctx, *next)
		if err != nil {
			return err
		}
		next = ancestor.ParentID
	}
	return nil
}

func validateCategoryFields(name string, categoryType category.CategoryType, colorCode string) error {
	if err := validateName("name", name); err != nil {
		return err
	}
	if categoryType != category.CategoryTypeExpense && categoryType != category.CategoryTypeIncome {
		return apperrors.InvalidArgument("type", "unknown category type")
	}
	if colorCode != "" && !colorCodePattern.MatchString(colorCode) {
		return apperrors.InvalidArgument("colorCode", "must look like #RRGGBB")
	}
	return nil
}

// checkCategoryName fails with Conflict when another category already uses name.
func checkCategoryName(ctx context.Context, writer *storage.Writer, name string, selfID int64) error {
	existing, err := writer.Category.FindByName(ctx, name)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperrors.Conflict("category", "a category named "+name+" already exists")
	}
	return nil
}
