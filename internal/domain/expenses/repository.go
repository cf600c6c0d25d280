package expenses

import "context"

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Expense, int64, error)
	GetByID(ctx context.Context, userID, expenseID string) (*Expense, error)
	Recent(ctx context.Context, userID string, limit int) ([]Expense, error)
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, userID, expenseID string) (bool, error)
}
