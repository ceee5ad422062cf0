package category

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        int64  `json:"id" doc:"Category id"`
	Name      string `json:"name" doc:"Unique category name"`
	Type      string `json:"type" doc:"expense or income"`
	ParentID  *int64 `json:"parentId,omitempty" doc:"Parent category id, absent for top-level categories"`
	ColorCode string `json:"colorCode,omitempty" doc:"Hex color such as #1A2B3C"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

type CategoryBody struct {
	Name      string `json:"name" minLength:"1" maxLength:"100" doc:"Unique category name"`
	Type      string `json:"type" enum:"expense,income" doc:"Category type"`
	ParentID  int64  `json:"parentId,omitempty" minimum:"0" doc:"Parent category id"`
	ColorCode string `json:"colorCode,omitempty" doc:"Hex color such as #1A2B3C"`
}

type CategoryPathInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Category id"`
}

type CategoryOutput struct {
	Body Category
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Categories ordered by id"`
	}
}

type operatorProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type categoryReader interface {
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	ListCategories(ctx context.Context, filter *category.CategoryFilter) ([]*category.Category, error)
	ListSubcategories(ctx context.Context, parentID int64) ([]*category.Category, error)
}

// Handlers serves the category endpoints.
type Handlers struct {
	Operator        operatorProcessor
	CategoryService categoryReader
}

func NewHandlers(op operatorProcessor, svc categoryReader) *Handlers {
	return &Handlers{Operator: op, CategoryService: svc}
}

func (h *Handlers) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create a category",
		Tags:        []string{"Categories"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get a category",
		Tags:        []string{"Categories"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "list-subcategories",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}/subcategories",
		Summary:     "List subcategories",
		Tags:        []string{"Categories"},
	}, h.subcategories)
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{id}",
		Summary:     "Update a category",
		Tags:        []string{"Categories"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete a category",
		Description:   "Fails while the category has subcategories, transactions or a budget allocation.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

type CreateCategoryInput struct {
	Body CategoryBody
}

type CreateCategoryOutput struct {
	Status int
	Body   Category
}

func (h *Handlers) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	categoryType, err := parseCategoryType(input.Body.Type)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{
		Name:      input.Body.Name,
		Type:      categoryType,
		ParentID:  parentID(input.Body.ParentID),
		ColorCode: input.Body.ColorCode,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to create category")
	}

	apierror.AddData(ctx, "categoryID", action.Created.ID)
	return &CreateCategoryOutput{Status: http.StatusCreated, Body: toCategory(action.Created)}, nil
}

type ListCategoriesInput struct {
	Type         string `query:"type" doc:"Only categories of this type"`
	TopLevelOnly bool   `query:"topLevelOnly" doc:"Only categories without a parent"`
}

func (h *Handlers) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	filter := &category.CategoryFilter{TopLevelOnly: input.TopLevelOnly}
	if input.Type != "" {
		categoryType, err := parseCategoryType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &categoryType
	}

	categories, err := h.CategoryService.ListCategories(ctx, filter)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to list categories")
	}
	return toListOutput(categories), nil
}

func (h *Handlers) get(ctx context.Context, input *CategoryPathInput) (*CategoryOutput, error) {
	cat, err := h.CategoryService.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get category")
	}
	return &CategoryOutput{Body: toCategory(cat)}, nil
}

func (h *Handlers) subcategories(ctx context.Context, input *CategoryPathInput) (*ListCategoriesOutput, error) {
	categories, err := h.CategoryService.ListSubcategories(ctx, input.ID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to list subcategories")
	}
	return toListOutput(categories), nil
}

type UpdateCategoryInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Category id"`
	Body CategoryBody
}

func (h *Handlers) update(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	categoryType, err := parseCategoryType(input.Body.Type)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateCategory{
		ID:        input.ID,
		Name:      input.Body.Name,
		Type:      categoryType,
		ParentID:  parentID(input.Body.ParentID),
		ColorCode: input.Body.ColorCode,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to update category")
	}
	return &CategoryOutput{Body: toCategory(action.Updated)}, nil
}

func (h *Handlers) delete(ctx context.Context, input *CategoryPathInput) (*struct{}, error) {
	if err := h.Operator.Process(ctx, &actions.DeleteCategory{ID: input.ID}); err != nil {
		return nil, apierror.Respond(ctx, err, "failed to delete category")
	}
	return nil, nil
}

func toCategory(cat *category.Category) Category {
	return Category{
		ID:        cat.ID,
		Name:      cat.Name,
		Type:      cat.Type.String(),
		ParentID:  cat.ParentID,
		ColorCode: cat.ColorCode,
		CreatedAt: cat.CreatedAt.Format(time.RFC3339),
	}
}

func toListOutput(categories []*category.Category) *ListCategoriesOutput {
	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, cat := range categories {
		out.Body.Categories[i] = toCategory(cat)
	}
	return out
}

func parseCategoryType(name string) (category.CategoryType, error) {
	categoryType, ok := category.ParseCategoryType(name)
	if !ok {
		return 0, huma.NewError(http.StatusBadRequest, "invalid type")
	}
	return categoryType, nil
}

// parentID maps the zero id to no parent.
func parentID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
