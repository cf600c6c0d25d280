package stats

import (
	"context"
	"strings"
	"time"

	statsdomain "expense-tracker-go/internal/domain/stats"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SumRange(ctx context.Context, userID string, from time.Time, to *time.Time) (float64, error) {
	conditions := []string{"user_id = ?", "date >= ?"}
	args := []interface{}{userID, from}
	if to != nil {
		conditions = append(conditions, "date < ?")
		args = append(args, *to)
	}

	query := "SELECT COALESCE(SUM(amount), 0) AS total FROM expenses WHERE " + strings.Join(conditions, " AND ")

	var row struct {
		Total float64 `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Total, nil
}

func (r *PostgresRepository) Daily(ctx context.Context, userID string, from, to time.Time) ([]statsdomain.DailyRow, error) {
	query := "SELECT to_char(date_trunc('day', e.date), 'YYYY-MM-DD') AS date, " +
		"COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count " +
		"FROM expenses e WHERE e.user_id = ? AND e.date >= ? AND e.date < ? " +
		"GROUP BY 1 ORDER BY 1"

	var rows []statsdomain.DailyRow
	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Monthly(ctx context.Context, userID string, from time.Time) ([]statsdomain.MonthlyRow, error) {
	query := "SELECT to_char(date_trunc('month', e.date), 'YYYY-MM') AS date, " +
		"COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count " +
		"FROM expenses e WHERE e.user_id = ? AND e.date >= ? " +
		"GROUP BY 1 ORDER BY 1"

	var rows []statsdomain.MonthlyRow
	if err := r.db.WithContext(ctx).Raw(query, userID, from).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ByCategory(ctx context.Context, userID string, from, to *time.Time) ([]statsdomain.CategoryRow, error) {
	conditions := []string{"e.user_id = ?"}
	args := []interface{}{userID}
	if from != nil {
		conditions = append(conditions, "e.date >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conditions = append(conditions, "e.date < ?")
		args = append(args, *to)
	}

	query := "SELECT c.id AS category_id, c.name AS category_name, c.icon AS category_icon, c.color AS category_color, " +
		"COALESCE(SUM(e.amount), 0) AS total, COUNT(e.id) AS count " +
		"FROM expenses e JOIN categories c ON c.id = e.category_id " +
		"WHERE " + strings.Join(conditions, " AND ") + " " +
		"GROUP BY c.id, c.name, c.icon, c.color " +
		"ORDER BY total DESC"

	var rows []statsdomain.CategoryRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
