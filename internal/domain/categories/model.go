package categories

import "time"

// Category rows with a nil UserID are global defaults, visible to every user
// but owned by none.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    *string   `gorm:"type:uuid;index"`
	Name      string    `gorm:"not null"`
	Icon      *string   `gorm:"type:text"`
	Color     *string   `gorm:"type:text"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type CreateInput struct {
	UserID string
	Name   string
	Icon   *string
	Color  *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type UpdateInput struct {
	UserID     string
	CategoryID string
	Name       string
	Icon       OptionalNullableString
	Color      OptionalNullableString
}
