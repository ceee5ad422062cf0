package service

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
)

// CategoryService handles category reads.
type CategoryService struct {
	storage storage.Storage
}

func NewCategoryService(store storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	return s.storage.Read().Categories.FindByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context, filter *category.CategoryFilter) ([]*category.Category, error) {
	return s.storage.Read().Categories.List(ctx, filter)
}

// ListSubcategories fails with NotFound when the parent does not exist.
func (s *CategoryService) ListSubcategories(ctx context.Context, parentID int64) ([]*category.Category, error) {
	reader := s.storage.Read()
	if _, err := reader.Categories.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	return reader.Categories.List(ctx, &category.CategoryFilter{ParentID: &parentID})
}
