package expenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"expense-tracker-go/internal/domain/categories"
)

const (
	ledgerUserID = "11111111-1111-1111-1111-111111111111"
	categoryID   = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
)

type fakeExpensesRepo struct {
	expenses   map[string]*Expense
	lastFilter ListFilter
	total      int64
}

func newFakeExpensesRepo() *fakeExpensesRepo {
	return &fakeExpensesRepo{expenses: make(map[string]*Expense)}
}

func (r *fakeExpensesRepo) add(expense Expense) *Expense {
	stored := expense
	r.expenses[expense.ID] = &stored
	return &stored
}

func (r *fakeExpensesRepo) List(ctx context.Context, userID string, filter ListFilter) ([]Expense, int64, error) {
	r.lastFilter = filter
	return []Expense{}, r.total, nil
}

func (r *fakeExpensesRepo) GetByID(ctx context.Context, userID, expenseID string) (*Expense, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || expense.UserID != userID {
		return nil, ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (r *fakeExpensesRepo) Recent(ctx context.Context, userID string, limit int) ([]Expense, error) {
	items := make([]Expense, 0)
	for _, expense := range r.expenses {
		if expense.UserID == userID {
			items = append(items, *expense)
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeExpensesRepo) Create(ctx context.Context, expense *Expense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpensesRepo) Update(ctx context.Context, expense *Expense) error {
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *fakeExpensesRepo) Delete(ctx context.Context, userID, expenseID string) (bool, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || expense.UserID != userID {
		return false, nil
	}
	delete(r.expenses, expenseID)
	return true, nil
}

type fakeResolver struct {
	visible map[string]bool
	calls   int
}

func (f *fakeResolver) Get(ctx context.Context, userID, categoryID string) (*categories.Category, error) {
	f.calls++
	if !f.visible[categoryID] {
		return nil, categories.ErrCategoryNotFound
	}
	return &categories.Category{ID: categoryID, Name: "Groceries"}, nil
}

func newLedger(repo Repository) (*Service, *fakeResolver) {
	resolver := &fakeResolver{visible: map[string]bool{categoryID: true}}
	return NewService(repo, resolver), resolver
}

func TestListPaginationMath(t *testing.T) {
	repo := newFakeExpensesRepo()
	repo.total = 25
	svc, _ := newLedger(repo)

	page, err := svc.List(context.Background(), ledgerUserID, ListFilter{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.PageNumber != 2 || page.Limit != 10 {
		t.Fatalf("expected page 2 limit 10, got page %d limit %d", page.PageNumber, page.Limit)
	}
}

func TestListDefaultsAndClamps(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc, _ := newLedger(repo)

	if _, err := svc.List(context.Background(), ledgerUserID, ListFilter{Page: -3, Limit: 5000}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastFilter.Page != 1 {
		t.Fatalf("expected page defaulted to 1, got %d", repo.lastFilter.Page)
	}
	if repo.lastFilter.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", repo.lastFilter.Limit)
	}
}

func TestListSortWhitelist(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc, _ := newLedger(repo)

	if _, err := svc.List(context.Background(), ledgerUserID, ListFilter{SortField: "user_id; drop table", SortOrder: "sideways"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastFilter.SortField != "date" {
		t.Fatalf("expected unknown sort field to fall back to date, got %q", repo.lastFilter.SortField)
	}
	if repo.lastFilter.SortOrder != "desc" {
		t.Fatalf("expected unknown sort order to fall back to desc, got %q", repo.lastFilter.SortOrder)
	}

	if _, err := svc.List(context.Background(), ledgerUserID, ListFilter{SortField: "amount", SortOrder: "asc"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastFilter.SortField != "amount" || repo.lastFilter.SortOrder != "asc" {
		t.Fatalf("expected whitelisted sort preserved, got %q %q", repo.lastFilter.SortField, repo.lastFilter.SortOrder)
	}
}

func TestCreateDefaultsDateToNow(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc, _ := newLedger(repo)
	fixed := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	expense, err := svc.Create(context.Background(), CreateInput{
		UserID:     ledgerUserID,
		Name:       "Lunch",
		Amount:     12.5,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !expense.Date.Equal(fixed) {
		t.Fatalf("expected date defaulted to %v, got %v", fixed, expense.Date)
	}
}

func TestCreateKeepsExplicitDate(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc, _ := newLedger(repo)

	explicit := time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC)
	expense, err := svc.Create(context.Background(), CreateInput{
		UserID:     ledgerUserID,
		Name:       "Gift",
		Amount:     80,
		CategoryID: categoryID,
		Date:       &explicit,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !expense.Date.Equal(explicit) {
		t.Fatalf("expected explicit date preserved, got %v", expense.Date)
	}

	stored, err := svc.Get(context.Background(), ledgerUserID, expense.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !stored.Date.Equal(explicit) {
		t.Fatalf("expected stored date %v, got %v", explicit, stored.Date)
	}
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc, _ := newLedger(newFakeExpensesRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:     ledgerUserID,
		Name:       "Refund",
		Amount:     -5,
		CategoryID: categoryID,
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestCreateRejectsInvisibleCategory(t *testing.T) {
	svc, _ := newLedger(newFakeExpensesRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:     ledgerUserID,
		Name:       "Lunch",
		Amount:     10,
		CategoryID: "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb",
	})
	if !errors.Is(err, categories.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateRevalidatesOnlyChangedCategory(t *testing.T) {
	repo := newFakeExpensesRepo()
	repo.add(Expense{
		ID:         "e1",
		UserID:     ledgerUserID,
		CategoryID: categoryID,
		Name:       "Lunch",
		Amount:     10,
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	svc, resolver := newLedger(repo)

	if _, err := svc.Update(context.Background(), UpdateInput{
		ID:         "e1",
		UserID:     ledgerUserID,
		Name:       "Lunch",
		Amount:     12,
		CategoryID: categoryID,
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolver.calls != 0 {
		t.Fatalf("expected no category lookup for an unchanged category, got %d", resolver.calls)
	}

	other := "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
	resolver.visible[other] = true
	updated, err := svc.Update(context.Background(), UpdateInput{
		ID:         "e1",
		UserID:     ledgerUserID,
		Name:       "Lunch",
		Amount:     12,
		CategoryID: other,
		Date:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one category lookup for a changed category, got %d", resolver.calls)
	}
	if updated.CategoryID != other {
		t.Fatalf("expected category %s, got %s", other, updated.CategoryID)
	}
}

func TestRecentLimitClamps(t *testing.T) {
	repo := newFakeExpensesRepo()
	for i := 0; i < 30; i++ {
		repo.add(Expense{ID: string(rune('a'+i%26)) + string(rune('0'+i/26)), UserID: ledgerUserID, CategoryID: categoryID, Name: "x", Amount: 1})
	}
	svc, _ := newLedger(repo)

	items, err := svc.Recent(context.Background(), ledgerUserID, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected default limit 5, got %d", len(items))
	}

	items, err = svc.Recent(context.Background(), ledgerUserID, 50)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("expected limit clamped to 20, got %d", len(items))
	}
}

func TestDeleteForeignExpenseNotFound(t *testing.T) {
	repo := newFakeExpensesRepo()
	repo.add(Expense{ID: "e1", UserID: "22222222-2222-2222-2222-222222222222", CategoryID: categoryID, Name: "x", Amount: 1})
	svc, _ := newLedger(repo)

	err := svc.Delete(context.Background(), ledgerUserID, "e1")
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}
