package stats

import (
	"context"
	"math"
	"time"

	"expense-tracker-go/internal/domain/budgets"
	"expense-tracker-go/internal/domain/expenses"
)

const (
	defaultMonths      = 6
	topCategoriesCount = 5
	dashboardRecent    = 5
)

// RecentLister is satisfied by *expenses.Service.
type RecentLister interface {
	Recent(ctx context.Context, userID string, limit int) ([]expenses.Expense, error)
}

// CurrentBudgetFinder is satisfied by *budgets.Service.
type CurrentBudgetFinder interface {
	FindCurrent(ctx context.Context, userID string) (*budgets.Status, error)
}

type Service struct {
	repo    Repository
	ledger  RecentLister
	budgets CurrentBudgetFinder
	now     func() time.Time
}

func NewService(repo Repository, ledger RecentLister, budgetFinder CurrentBudgetFinder) *Service {
	return &Service{
		repo:    repo,
		ledger:  ledger,
		budgets: budgetFinder,
		now:     time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	todayTotal, err := s.repo.SumRange(ctx, userID, midnight, nil)
	if err != nil {
		return nil, err
	}
	weekTotal, err := s.repo.SumRange(ctx, userID, weekStart, nil)
	if err != nil {
		return nil, err
	}
	monthTotal, err := s.repo.SumRange(ctx, userID, monthStart, nil)
	if err != nil {
		return nil, err
	}

	categoryRows, err := s.repo.ByCategory(ctx, userID, &monthStart, nil)
	if err != nil {
		return nil, err
	}
	if categoryRows == nil {
		categoryRows = []CategoryRow{}
	}
	if len(categoryRows) > topCategoriesCount {
		categoryRows = categoryRows[:topCategoriesCount]
	}
	for i := range categoryRows {
		categoryRows[i].Percentage = percentageOf(categoryRows[i].Total, monthTotal)
	}

	recent, err := s.ledger.Recent(ctx, userID, dashboardRecent)
	if err != nil {
		return nil, err
	}

	budgetStatus, err := s.budgets.FindCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	return &Dashboard{
		TodayTotal:           todayTotal,
		WeekTotal:            weekTotal,
		MonthTotal:           monthTotal,
		TopCategories:        categoryRows,
		RecentExpenses:       recent,
		BudgetStatus:         budgetStatus,
		AverageDailySpending: round2(monthTotal / float64(daysInMonth)),
	}, nil
}

// Daily buckets the ledger by calendar day over the inclusive [From, To]
// range of the filter.
func (s *Service) Daily(ctx context.Context, userID string, filter DailyFilter) ([]DailyRow, error) {
	from := startOfDay(filter.From)
	toExclusive := startOfDay(filter.To).AddDate(0, 0, 1)

	rows, err := s.repo.Daily(ctx, userID, from, toExclusive)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []DailyRow{}
	}
	return rows, nil
}

// Monthly buckets the last N calendar months including the current one.
func (s *Service) Monthly(ctx context.Context, userID string, months int) ([]MonthlyRow, error) {
	if months <= 0 {
		months = defaultMonths
	}

	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	rows, err := s.repo.Monthly(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []MonthlyRow{}
	}
	return rows, nil
}

// ByCategory totals the ledger per category over an optional inclusive date
// range; absent bounds mean all-time. Percentages are shares of the grand
// total across the returned rows.
func (s *Service) ByCategory(ctx context.Context, userID string, filter CategoryFilter) ([]CategoryRow, error) {
	var from, to *time.Time
	if filter.From != nil {
		start := startOfDay(*filter.From)
		from = &start
	}
	if filter.To != nil {
		end := startOfDay(*filter.To).AddDate(0, 0, 1)
		to = &end
	}

	rows, err := s.repo.ByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var grandTotal float64
	for _, row := range rows {
		grandTotal += row.Total
	}
	for i := range rows {
		rows[i].Percentage = percentageOf(rows[i].Total, grandTotal)
	}

	if rows == nil {
		rows = []CategoryRow{}
	}
	return rows, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func percentageOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(part / total * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
