package stats

import (
	"time"

	"expense-tracker-go/internal/domain/budgets"
	"expense-tracker-go/internal/domain/expenses"
)

type DailyRow struct {
	Date  string  `json:"date" gorm:"column:date"`
	Total float64 `json:"total" gorm:"column:total"`
	Count int64   `json:"count" gorm:"column:count"`
}

type MonthlyRow struct {
	Date  string  `json:"date" gorm:"column:date"`
	Total float64 `json:"total" gorm:"column:total"`
	Count int64   `json:"count" gorm:"column:count"`
}

type CategoryRow struct {
	CategoryID    string  `json:"category_id" gorm:"column:category_id"`
	CategoryName  string  `json:"category_name" gorm:"column:category_name"`
	CategoryIcon  *string `json:"category_icon" gorm:"column:category_icon"`
	CategoryColor *string `json:"category_color" gorm:"column:category_color"`
	Total         float64 `json:"total" gorm:"column:total"`
	Count         int64   `json:"count" gorm:"column:count"`
	Percentage    float64 `json:"percentage" gorm:"-"`
}

type Dashboard struct {
	TodayTotal           float64
	WeekTotal            float64
	MonthTotal           float64
	TopCategories        []CategoryRow
	RecentExpenses       []expenses.Expense
	BudgetStatus         *budgets.Status
	AverageDailySpending float64
}

type DailyFilter struct {
	From time.Time
	To   time.Time
}

type CategoryFilter struct {
	From *time.Time
	To   *time.Time
}
