package categories

import (
	"context"
	"errors"

	categoriesdomain "expense-tracker-go/internal/domain/categories"
	expensesdomain "expense-tracker-go/internal/domain/expenses"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListVisible(ctx context.Context, userID string) ([]categoriesdomain.Category, error) {
	var items []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("is_default desc, lower(name) asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetVisibleByID(ctx context.Context, userID, categoryID string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) Create(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) Update(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"icon":       category.Icon,
			"color":      category.Color,
			"updated_at": category.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&categoriesdomain.Category{}, "id = ? AND user_id = ? AND is_default = false", categoryID, userID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountVisibleByName(ctx context.Context, userID, name string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("(user_id = ? OR user_id IS NULL) AND lower(name) = lower(?)", userID, name).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountOwnByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("user_id = ? AND lower(name) = lower(?)", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountExpensesByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
