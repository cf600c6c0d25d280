package budgets

import (
	"context"
	"errors"
	"time"

	budgetsdomain "expense-tracker-go/internal/domain/budgets"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]budgetsdomain.Budget, error) {
	var items []budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, userID string) ([]budgetsdomain.Budget, error) {
	var items []budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		Order("start_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, budgetID string) (*budgetsdomain.Budget, error) {
	var budget budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetsdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *PostgresRepository) Create(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) Update(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"amount":      budget.Amount,
			"period_type": budget.PeriodType,
			"start_date":  budget.StartDate,
			"end_date":    budget.EndDate,
			"is_active":   budget.IsActive,
			"updated_at":  budget.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, budgetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetsdomain.Budget{}, "user_id = ? AND id = ?", userID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SumExpenses(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	var row struct {
		Total float64 `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(amount), 0) AS total FROM expenses WHERE user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Total, nil
}
