package budgets

import "time"

const (
	PeriodWeekly  = "WEEKLY"
	PeriodMonthly = "MONTHLY"
)

type Budget struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"type:uuid;index;not null"`
	Amount     float64   `gorm:"type:numeric(12,2);not null"`
	PeriodType string    `gorm:"not null"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Status is a budget augmented with its consumption over [StartDate, EndDate].
type Status struct {
	Budget
	Spent         float64
	Remaining     float64
	Percentage    float64
	DaysRemaining int
}

type CreateInput struct {
	UserID     string
	Amount     float64
	PeriodType string
	StartDate  time.Time
	EndDate    *time.Time
}

type UpdateInput struct {
	ID         string
	UserID     string
	Amount     *float64
	PeriodType *string
	StartDate  *time.Time
	EndDate    *time.Time
	IsActive   *bool
}
