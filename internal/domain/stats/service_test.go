package stats

import (
	"context"
	"testing"
	"time"

	"expense-tracker-go/internal/domain/budgets"
	"expense-tracker-go/internal/domain/expenses"
)

const statsUserID = "11111111-1111-1111-1111-111111111111"

type sumCall struct {
	from time.Time
	to   *time.Time
}

type fakeStatsRepo struct {
	sums         map[time.Time]float64
	dailyRows    []DailyRow
	monthlyRows  []MonthlyRow
	categoryRows []CategoryRow

	sumCalls    []sumCall
	dailyFrom   time.Time
	dailyTo     time.Time
	monthlyFrom time.Time
}

func (r *fakeStatsRepo) SumRange(ctx context.Context, userID string, from time.Time, to *time.Time) (float64, error) {
	r.sumCalls = append(r.sumCalls, sumCall{from: from, to: to})
	return r.sums[from], nil
}

func (r *fakeStatsRepo) Daily(ctx context.Context, userID string, from, to time.Time) ([]DailyRow, error) {
	r.dailyFrom = from
	r.dailyTo = to
	return r.dailyRows, nil
}

func (r *fakeStatsRepo) Monthly(ctx context.Context, userID string, from time.Time) ([]MonthlyRow, error) {
	r.monthlyFrom = from
	return r.monthlyRows, nil
}

func (r *fakeStatsRepo) ByCategory(ctx context.Context, userID string, from, to *time.Time) ([]CategoryRow, error) {
	return r.categoryRows, nil
}

type fakeLedger struct {
	items []expenses.Expense
}

func (f *fakeLedger) Recent(ctx context.Context, userID string, limit int) ([]expenses.Expense, error) {
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeBudgetFinder struct {
	status *budgets.Status
}

func (f *fakeBudgetFinder) FindCurrent(ctx context.Context, userID string) (*budgets.Status, error) {
	return f.status, nil
}

func newStatsService(repo *fakeStatsRepo, now time.Time) *Service {
	svc := NewService(repo, &fakeLedger{}, &fakeBudgetFinder{})
	svc.now = func() time.Time { return now }
	return svc
}

func TestDashboardTotals(t *testing.T) {
	now := time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC)
	midnight := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeStatsRepo{
		sums: map[time.Time]float64{
			midnight:   30,
			weekStart:  120,
			monthStart: 310,
		},
	}
	svc := newStatsService(repo, now)

	dashboard, err := svc.Dashboard(context.Background(), statsUserID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if dashboard.TodayTotal != 30 {
		t.Fatalf("expected today total 30, got %v", dashboard.TodayTotal)
	}
	if dashboard.WeekTotal != 120 {
		t.Fatalf("expected week total 120, got %v", dashboard.WeekTotal)
	}
	if dashboard.MonthTotal != 310 {
		t.Fatalf("expected month total 310, got %v", dashboard.MonthTotal)
	}
	// March has 31 days: 310 / 31 = 10.
	if dashboard.AverageDailySpending != 10 {
		t.Fatalf("expected average daily spending 10, got %v", dashboard.AverageDailySpending)
	}
	if len(repo.sumCalls) != 3 {
		t.Fatalf("expected 3 range sums, got %d", len(repo.sumCalls))
	}
}

func TestDashboardEmptyLedger(t *testing.T) {
	now := time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC)
	repo := &fakeStatsRepo{sums: map[time.Time]float64{}}
	svc := newStatsService(repo, now)

	dashboard, err := svc.Dashboard(context.Background(), statsUserID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if dashboard.TodayTotal != 0 || dashboard.WeekTotal != 0 || dashboard.MonthTotal != 0 {
		t.Fatalf("expected zero totals, got %+v", dashboard)
	}
	if dashboard.TopCategories == nil || len(dashboard.TopCategories) != 0 {
		t.Fatalf("expected empty top categories slice, got %v", dashboard.TopCategories)
	}
	if dashboard.AverageDailySpending != 0 {
		t.Fatalf("expected zero average, got %v", dashboard.AverageDailySpending)
	}
	if dashboard.BudgetStatus != nil {
		t.Fatalf("expected nil budget status, got %+v", dashboard.BudgetStatus)
	}
}

func TestDashboardTopCategoriesCapped(t *testing.T) {
	now := time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC)
	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]CategoryRow, 0, 7)
	for i := 0; i < 7; i++ {
		rows = append(rows, CategoryRow{CategoryID: string(rune('a' + i)), Total: float64(70 - i*10)})
	}
	repo := &fakeStatsRepo{
		sums:         map[time.Time]float64{monthStart: 280},
		categoryRows: rows,
	}
	svc := newStatsService(repo, now)

	dashboard, err := svc.Dashboard(context.Background(), statsUserID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(dashboard.TopCategories) != 5 {
		t.Fatalf("expected top 5 categories, got %d", len(dashboard.TopCategories))
	}
	if dashboard.TopCategories[0].Percentage != 25 {
		t.Fatalf("expected 70/280 = 25%%, got %v", dashboard.TopCategories[0].Percentage)
	}
}

func TestByCategoryPercentages(t *testing.T) {
	repo := &fakeStatsRepo{
		categoryRows: []CategoryRow{
			{CategoryID: "cat1", CategoryName: "Groceries", Total: 100, Count: 4},
			{CategoryID: "cat2", CategoryName: "Travel", Total: 50, Count: 1},
		},
	}
	svc := newStatsService(repo, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	rows, err := svc.ByCategory(context.Background(), statsUserID, CategoryFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Percentage != 66.67 {
		t.Fatalf("expected 66.67, got %v", rows[0].Percentage)
	}
	if rows[1].Percentage != 33.33 {
		t.Fatalf("expected 33.33, got %v", rows[1].Percentage)
	}
	if rows[0].Total < rows[1].Total {
		t.Fatalf("expected rows sorted by total descending")
	}
}

func TestByCategoryEmpty(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := newStatsService(repo, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	rows, err := svc.ByCategory(context.Background(), statsUserID, CategoryFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty slice, got %v", rows)
	}
}

func TestDailyRangeIsInclusive(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := newStatsService(repo, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	_, err := svc.Daily(context.Background(), statsUserID, DailyFilter{
		From: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC); !repo.dailyFrom.Equal(want) {
		t.Fatalf("expected from %v, got %v", want, repo.dailyFrom)
	}
	// Inclusive March 5 means querying up to midnight March 6.
	if want := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC); !repo.dailyTo.Equal(want) {
		t.Fatalf("expected to %v, got %v", want, repo.dailyTo)
	}
}

func TestMonthlyWindow(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := newStatsService(repo, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))

	if _, err := svc.Monthly(context.Background(), statsUserID, 6); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC); !repo.monthlyFrom.Equal(want) {
		t.Fatalf("expected window from %v, got %v", want, repo.monthlyFrom)
	}

	if _, err := svc.Monthly(context.Background(), statsUserID, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC); !repo.monthlyFrom.Equal(want) {
		t.Fatalf("expected default of six months, got %v", repo.monthlyFrom)
	}
}

func TestMonthlyEmpty(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := newStatsService(repo, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))

	rows, err := svc.Monthly(context.Background(), statsUserID, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty slice, got %v", rows)
	}
}
