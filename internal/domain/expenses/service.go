package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expense-tracker-go/internal/domain/categories"
	"github.com/google/uuid"
)

const (
	defaultPageLimit   = 10
	defaultMaxLimit    = 100
	defaultRecentLimit = 5
	maxRecentLimit     = 20
)

var sortFields = map[string]struct{}{
	"date":       {},
	"amount":     {},
	"name":       {},
	"created_at": {},
}

// CategoryResolver reports whether a category is visible to a user, i.e. owned
// by them or a global default. Satisfied by *categories.Service.
type CategoryResolver interface {
	Get(ctx context.Context, userID, categoryID string) (*categories.Category, error)
}

type Limits struct {
	DefaultPageLimit int
	MaxPageLimit     int
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	limits     Limits
	now        func() time.Time
}

func NewService(repo Repository, resolver CategoryResolver) *Service {
	return NewServiceWithLimits(repo, resolver, Limits{})
}

func NewServiceWithLimits(repo Repository, resolver CategoryResolver, limits Limits) *Service {
	if limits.DefaultPageLimit <= 0 {
		limits.DefaultPageLimit = defaultPageLimit
	}
	if limits.MaxPageLimit <= 0 {
		limits.MaxPageLimit = defaultMaxLimit
	}
	return &Service{
		repo:       repo,
		categories: resolver,
		limits:     limits,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) (*Page, error) {
	filter = s.normalizeFilter(filter)

	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &Page{
		Items:      items,
		Total:      total,
		PageNumber: filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, expenseID string) (*Expense, error) {
	return s.repo.GetByID(ctx, userID, expenseID)
}

func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]Expense, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.Recent(ctx, userID, limit)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Expense, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	if _, err := s.categories.Get(ctx, input.UserID, input.CategoryID); err != nil {
		return nil, err
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	expense := Expense{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		Name:       name,
		Amount:     input.Amount,
		Date:       date,
		Notes:      input.Notes,
	}

	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Expense, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	expense, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	// A changed category must still be visible to the owner.
	if input.CategoryID != expense.CategoryID {
		if _, err := s.categories.Get(ctx, input.UserID, input.CategoryID); err != nil {
			return nil, err
		}
	}

	expense.Name = name
	expense.Amount = input.Amount
	expense.CategoryID = input.CategoryID
	expense.Date = input.Date
	expense.Notes = input.Notes
	expense.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *Service) Delete(ctx context.Context, userID, expenseID string) error {
	deleted, err := s.repo.Delete(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) normalizeFilter(filter ListFilter) ListFilter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = s.limits.DefaultPageLimit
	}
	if filter.Limit > s.limits.MaxPageLimit {
		filter.Limit = s.limits.MaxPageLimit
	}
	if _, ok := sortFields[filter.SortField]; !ok {
		filter.SortField = "date"
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}
	return filter
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}
