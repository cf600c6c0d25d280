package stats

import (
	"context"
	"time"
)

// Repository bounds are half-open [from, to): the service converts inclusive
// calendar-day inputs before calling down. Nil bounds mean unbounded.
type Repository interface {
	SumRange(ctx context.Context, userID string, from time.Time, to *time.Time) (float64, error)
	Daily(ctx context.Context, userID string, from, to time.Time) ([]DailyRow, error)
	Monthly(ctx context.Context, userID string, from time.Time) ([]MonthlyRow, error)
	ByCategory(ctx context.Context, userID string, from, to *time.Time) ([]CategoryRow, error)
}
