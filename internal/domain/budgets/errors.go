package budgets

import "errors"

var (
	ErrBudgetNotFound    = errors.New("budget not found")
	ErrBudgetOverlap     = errors.New("budget overlaps an active budget")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrInvalidPeriodType = errors.New("period type must be WEEKLY or MONTHLY")
	ErrNegativeAmount    = errors.New("amount must not be negative")
)
