package budgets

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]Budget, error)
	ListActive(ctx context.Context, userID string) ([]Budget, error)
	GetByID(ctx context.Context, userID, budgetID string) (*Budget, error)
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, userID, budgetID string) (bool, error)
	SumExpenses(ctx context.Context, userID string, from, to time.Time) (float64, error)
}
