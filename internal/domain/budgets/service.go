package budgets

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string) ([]Budget, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, budgetID string) (*Budget, error) {
	return s.repo.GetByID(ctx, userID, budgetID)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Budget, error) {
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	if input.PeriodType != PeriodWeekly && input.PeriodType != PeriodMonthly {
		return nil, ErrInvalidPeriodType
	}

	endDate := inferEndDate(input.StartDate, input.PeriodType)
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if !endDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	// Pre-check for a friendly error; the exclusion constraint on the budgets
	// table is what actually guarantees non-overlap under concurrency.
	active, err := s.repo.ListActive(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	for _, existing := range active {
		if intervalsOverlap(input.StartDate, endDate, existing.StartDate, existing.EndDate) {
			return nil, ErrBudgetOverlap
		}
	}

	budget := Budget{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		Amount:     input.Amount,
		PeriodType: input.PeriodType,
		StartDate:  input.StartDate,
		EndDate:    endDate,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, &budget); err != nil {
		return nil, err
	}

	return &budget, nil
}

// FindCurrent returns the active budget whose interval contains the current
// instant, augmented with its consumption, or nil when none does.
func (s *Service) FindCurrent(ctx context.Context, userID string) (*Status, error) {
	now := s.now().UTC()

	active, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, budget := range active {
		if containsInstant(budget.StartDate, budget.EndDate, now) {
			return s.buildStatus(ctx, budget, now)
		}
	}

	return nil, nil
}

func (s *Service) GetStatus(ctx context.Context, userID, budgetID string) (*Status, error) {
	budget, err := s.repo.GetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.buildStatus(ctx, *budget, s.now().UTC())
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Budget, error) {
	budget, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, ErrNegativeAmount
		}
		budget.Amount = *input.Amount
	}
	if input.PeriodType != nil {
		if *input.PeriodType != PeriodWeekly && *input.PeriodType != PeriodMonthly {
			return nil, ErrInvalidPeriodType
		}
		budget.PeriodType = *input.PeriodType
	}

	startDate := budget.StartDate
	endDate := budget.EndDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}
	budget.StartDate = startDate
	budget.EndDate = endDate

	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}
	budget.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *Service) Delete(ctx context.Context, userID, budgetID string) error {
	deleted, err := s.repo.Delete(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *Service) buildStatus(ctx context.Context, budget Budget, now time.Time) (*Status, error) {
	spent, err := s.repo.SumExpenses(ctx, budget.UserID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if budget.Amount > 0 {
		percentage = round2(spent / budget.Amount * 100)
	}

	daysRemaining := int(math.Ceil(budget.EndDate.Sub(now).Hours() / 24))
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return &Status{
		Budget:        budget,
		Spent:         spent,
		Remaining:     budget.Amount - spent,
		Percentage:    percentage,
		DaysRemaining: daysRemaining,
	}, nil
}

// inferEndDate gives the last day of the period starting at startDate: six
// days later for WEEKLY, one calendar month minus a day for MONTHLY.
func inferEndDate(startDate time.Time, periodType string) time.Time {
	if periodType == PeriodWeekly {
		return startDate.AddDate(0, 0, 6)
	}
	return startDate.AddDate(0, 1, 0).AddDate(0, 0, -1)
}

// intervalsOverlap treats both intervals as endpoint-inclusive.
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return containsInstant(bStart, bEnd, aStart) ||
		containsInstant(bStart, bEnd, aEnd) ||
		(aStart.Before(bStart) && aEnd.After(bEnd))
}

func containsInstant(start, end, t time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
