package categories

import "context"

type Repository interface {
	ListVisible(ctx context.Context, userID string) ([]Category, error)
	GetVisibleByID(ctx context.Context, userID, categoryID string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, userID, categoryID string) (bool, error)
	CountVisibleByName(ctx context.Context, userID, name string) (int64, error)
	CountOwnByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	CountExpensesByCategoryID(ctx context.Context, categoryID string) (int64, error)
}
