package expenses

import "time"

type Expense struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"type:uuid;index;not null"`
	CategoryID string    `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"not null"`
	Amount     float64   `gorm:"type:numeric(12,2);not null"`
	Date       time.Time `gorm:"not null"`
	Notes      *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// ListFilter enumerates every optional predicate explicitly; a nil field means
// the predicate is absent.
type ListFilter struct {
	CategoryID *string
	From       *time.Time
	To         *time.Time
	MinAmount  *float64
	MaxAmount  *float64
	Page       int
	Limit      int
	SortField  string
	SortOrder  string
}

// Page is one page of ledger results together with the counts the caller
// needs to paginate further.
type Page struct {
	Items      []Expense
	Total      int64
	PageNumber int
	Limit      int
	TotalPages int
}

type CreateInput struct {
	UserID     string
	Name       string
	Amount     float64
	CategoryID string
	Date       *time.Time
	Notes      *string
}

type UpdateInput struct {
	ID         string
	UserID     string
	Name       string
	Amount     float64
	CategoryID string
	Date       time.Time
	Notes      *string
}
