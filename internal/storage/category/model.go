package category

import (
	"context"
	"time"
)

type Category struct {
	ID        int64
	Name      string
	Type      CategoryType
	ParentID  *int64
	ColorCode string
	CreatedAt time.Time
}

// CategoryFilter narrows a category listing. TopLevelOnly and ParentID are exclusive.
type CategoryFilter struct {
	Type         *CategoryType
	ParentID     *int64
	TopLevelOnly bool
}

type CategoryCreate struct {
	Name      string
	Type      CategoryType
	ParentID  *int64
	ColorCode string
}

type CategoryUpdate struct {
	Name      string
	Type      CategoryType
	ParentID  *int64
	ColorCode string
}

type IReader interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
}

type IWriter interface {
	IReader
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Update(ctx context.Context, id int64, update *CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryType int8

const (
	CategoryTypeExpense CategoryType = iota
	CategoryTypeIncome
)

func (t CategoryType) String() string {
	switch t {
	case CategoryTypeExpense:
		return "expense"
	case CategoryTypeIncome:
		return "income"
	default:
		return "unknown"
	}
}

func ParseCategoryType(name string) (CategoryType, bool) {
	switch name {
	case "expense":
		return CategoryTypeExpense, true
	case "income":
		return CategoryTypeIncome, true
	default:
		return 0, false
	}
}
