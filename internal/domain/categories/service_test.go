package categories

import (
	"context"
	"errors"
	"sort"
	"testing"
)

const (
	userID      = "11111111-1111-1111-1111-111111111111"
	otherUserID = "22222222-2222-2222-2222-222222222222"
)

type fakeCategoriesRepo struct {
	categories   map[string]*Category
	expenseCount map[string]int64
}

func newFakeCategoriesRepo() *fakeCategoriesRepo {
	return &fakeCategoriesRepo{
		categories:   make(map[string]*Category),
		expenseCount: make(map[string]int64),
	}
}

func (r *fakeCategoriesRepo) add(category Category) *Category {
	stored := category
	r.categories[category.ID] = &stored
	return &stored
}

func (r *fakeCategoriesRepo) visible(category *Category, userID string) bool {
	return category.UserID == nil || *category.UserID == userID
}

func (r *fakeCategoriesRepo) ListVisible(ctx context.Context, userID string) ([]Category, error) {
	items := make([]Category, 0)
	for _, category := range r.categories {
		if r.visible(category, userID) {
			items = append(items, *category)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsDefault != items[j].IsDefault {
			return items[i].IsDefault
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *fakeCategoriesRepo) GetVisibleByID(ctx context.Context, userID, categoryID string) (*Category, error) {
	category, ok := r.categories[categoryID]
	if !ok || !r.visible(category, userID) {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoriesRepo) Create(ctx context.Context, category *Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoriesRepo) Update(ctx context.Context, category *Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoriesRepo) Delete(ctx context.Context, userID, categoryID string) (bool, error) {
	category, ok := r.categories[categoryID]
	if !ok || category.IsDefault || category.UserID == nil || *category.UserID != userID {
		return false, nil
	}
	delete(r.categories, categoryID)
	return true, nil
}

func (r *fakeCategoriesRepo) CountVisibleByName(ctx context.Context, userID, name string) (int64, error) {
	var count int64
	for _, category := range r.categories {
		if r.visible(category, userID) && equalFold(category.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoriesRepo) CountOwnByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	var count int64
	for _, category := range r.categories {
		if category.ID == excludeID {
			continue
		}
		if category.UserID != nil && *category.UserID == userID && equalFold(category.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoriesRepo) CountExpensesByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	return r.expenseCount[categoryID], nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func ownedCategory(id, owner, name string) Category {
	return Category{ID: id, UserID: &owner, Name: name}
}

func defaultCategory(id, name string) Category {
	return Category{ID: id, Name: name, IsDefault: true}
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeCategoriesRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{UserID: userID, Name: "  Groceries  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Groceries" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.UserID == nil || *created.UserID != userID {
		t.Fatalf("expected category owned by %s", userID)
	}
	if created.IsDefault {
		t.Fatalf("created category must not be a default")
	}
}

func TestCreateCategoryNameCollision(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", userID, "Groceries"))
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{UserID: userID, Name: "groceries"})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCreateCategoryCollidesWithDefault(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(defaultCategory("d1", "Healthcare"))
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{UserID: userID, Name: "Healthcare"})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCreateCategoryIgnoresOtherUsers(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", otherUserID, "Groceries"))
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateInput{UserID: userID, Name: "Groceries"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUpdateDefaultCategoryForbidden(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(defaultCategory("d1", "Healthcare"))
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), UpdateInput{UserID: userID, CategoryID: "d1", Name: "Renamed"})
	if !errors.Is(err, ErrCategoryProtected) {
		t.Fatalf("expected ErrCategoryProtected, got %v", err)
	}
}

func TestUpdateForeignCategoryNotFound(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", otherUserID, "Groceries"))
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), UpdateInput{UserID: userID, CategoryID: "c1", Name: "Renamed"})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateRenameCollision(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", userID, "Groceries"))
	repo.add(ownedCategory("c2", userID, "Travel"))
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), UpdateInput{UserID: userID, CategoryID: "c2", Name: "Groceries"})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestUpdateRenameToOwnNameExcludesSelf(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", userID, "Groceries"))
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), UpdateInput{UserID: userID, CategoryID: "c1", Name: "Groceries"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Groceries" {
		t.Fatalf("expected unchanged name, got %q", updated.Name)
	}
}

func TestUpdateNullableFields(t *testing.T) {
	icon := "cart"
	repo := newFakeCategoriesRepo()
	repo.add(Category{ID: "c1", UserID: strPtr(userID), Name: "Groceries", Icon: &icon})
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), UpdateInput{
		UserID:     userID,
		CategoryID: "c1",
		Name:       "Groceries",
		Icon:       OptionalNullableString{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Icon != nil {
		t.Fatalf("expected icon cleared, got %v", *updated.Icon)
	}
}

func TestDeleteDefaultCategoryForbidden(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(defaultCategory("d1", "Healthcare"))
	svc := NewService(repo)

	err := svc.Delete(context.Background(), userID, "d1")
	if !errors.Is(err, ErrCategoryProtected) {
		t.Fatalf("expected ErrCategoryProtected, got %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", userID, "Groceries"))
	repo.expenseCount["c1"] = 2
	svc := NewService(repo)

	err := svc.Delete(context.Background(), userID, "c1")
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	repo.expenseCount["c1"] = 0
	if err := svc.Delete(context.Background(), userID, "c1"); err != nil {
		t.Fatalf("expected delete to succeed once unused, got %v", err)
	}
	if _, ok := repo.categories["c1"]; ok {
		t.Fatalf("expected category removed")
	}
}

func TestListVisibleOrdering(t *testing.T) {
	repo := newFakeCategoriesRepo()
	repo.add(ownedCategory("c1", userID, "Travel"))
	repo.add(defaultCategory("d1", "Healthcare"))
	repo.add(ownedCategory("c2", userID, "Groceries"))
	repo.add(ownedCategory("c3", otherUserID, "Hidden"))
	svc := NewService(repo)

	items, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 visible categories, got %d", len(items))
	}
	if !items[0].IsDefault {
		t.Fatalf("expected defaults first, got %q", items[0].Name)
	}
	if items[1].Name != "Groceries" || items[2].Name != "Travel" {
		t.Fatalf("expected alphabetical ordering, got %q then %q", items[1].Name, items[2].Name)
	}
}

func strPtr(value string) *string {
	return &value
}
