package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameLength = 50

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the categories visible to a user: global defaults first, then
// the user's own, each group alphabetical.
func (s *Service) List(ctx context.Context, userID string) ([]Category, error) {
	return s.repo.ListVisible(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, categoryID string) (*Category, error) {
	return s.repo.GetVisibleByID(ctx, userID, categoryID)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	// Collision is checked against everything the user can see: their own
	// categories and the global defaults.
	count, err := s.repo.CountVisibleByName(ctx, input.UserID, name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	owner := input.UserID
	category := Category{
		ID:     uuid.NewString(),
		UserID: &owner,
		Name:   name,
		Icon:   input.Icon,
		Color:  input.Color,
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.GetVisibleByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := requireOwned(category, input.UserID); err != nil {
		return nil, err
	}

	// Rename collisions only matter within the user's own categories here;
	// defaults stay visible under their original names regardless.
	count, err := s.repo.CountOwnByName(ctx, input.UserID, name, category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category.Name = name
	if input.Icon.Set {
		category.Icon = input.Icon.Value
	}
	if input.Color.Set {
		category.Color = input.Color.Value
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) Delete(ctx context.Context, userID, categoryID string) error {
	category, err := s.repo.GetVisibleByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if err := requireOwned(category, userID); err != nil {
		return err
	}

	inUse, err := s.repo.CountExpensesByCategoryID(ctx, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.Delete(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}

func requireOwned(category *Category, userID string) error {
	if category.IsDefault || category.UserID == nil || *category.UserID != userID {
		return ErrCategoryProtected
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	return name, nil
}
