package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

func seedCategory(t *testing.T, repo *CategoryRepository, id, title, slug string, created time.Time) {
	t.Helper()

	err := repo.CreateCategory(context.Background(), domain.Category{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: "seeded " + title,
		CreatedAt:   created,
		UpdatedAt:   created,
	})
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", id, err)
	}
}

func TestCategoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewCategoryRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	seedCategory(t, repo, "cat-1", "Massages", "massages", now)

	fetched, err := repo.GetCategory(ctx, "cat-1")
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if fetched.Title != "Massages" || fetched.Slug != "massages" {
		t.Fatalf("unexpected category: %#v", fetched)
	}

	fetched.Title = "Massage Therapy"
	fetched.Slug = "massage-therapy"
	fetched.UpdatedAt = now.Add(time.Minute)
	if err := repo.UpdateCategory(ctx, fetched); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}

	fetched, err = repo.GetCategory(ctx, "cat-1")
	if err != nil {
		t.Fatalf("GetCategory after update failed: %v", err)
	}
	if fetched.Slug != "massage-therapy" {
		t.Fatalf("slug not updated, got %q", fetched.Slug)
	}

	if err := repo.DeleteCategory(ctx, "cat-1"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if _, err := repo.GetCategory(ctx, "cat-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateCategory(ctx, fetched); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("updating a deleted row should report ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_List(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewCategoryRepository(pool)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("cat-%d", i)
		seedCategory(t, repo, id, "Category "+id, "category-"+id, base.Add(time.Duration(i)*time.Minute))
	}

	categories, total, err := repo.ListCategories(ctx, 0, 3)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(categories) != 3 || categories[0].ID != "cat-4" {
		t.Fatalf("expected the newest three, got %#v", categories)
	}

	categories, total, err = repo.ListCategories(ctx, 3, 3)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if total != 5 || len(categories) != 2 || categories[0].ID != "cat-1" {
		t.Fatalf("unexpected final page: total=%d %#v", total, categories)
	}
}

func TestSubCategoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	categories := NewCategoryRepository(pool)
	repo := NewSubCategoryRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	seedCategory(t, categories, "cat-1", "Massages", "massages", now)
	seedCategory(t, categories, "cat-2", "Facials", "facials", now)

	sub := domain.SubCategory{
		ID:          "sub-1",
		CategoryID:  "cat-1",
		Title:       "Deep Tissue",
		Slug:        "deep-tissue",
		Description: "deep work",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.CreateSubCategory(ctx, sub); err != nil {
		t.Fatalf("CreateSubCategory failed: %v", err)
	}

	fetched, err := repo.GetSubCategory(ctx, "sub-1")
	if err != nil {
		t.Fatalf("GetSubCategory failed: %v", err)
	}
	if fetched.CategoryID != "cat-1" || fetched.Slug != "deep-tissue" {
		t.Fatalf("unexpected subcategory: %#v", fetched)
	}

	fetched.CategoryID = "cat-2"
	fetched.Title = "Hot Stone"
	fetched.Slug = "hot-stone"
	fetched.UpdatedAt = now.Add(time.Minute)
	if err := repo.UpdateSubCategory(ctx, fetched); err != nil {
		t.Fatalf("UpdateSubCategory failed: %v", err)
	}

	fetched, err = repo.GetSubCategory(ctx, "sub-1")
	if err != nil {
		t.Fatalf("GetSubCategory after update failed: %v", err)
	}
	if fetched.CategoryID != "cat-2" || fetched.Slug != "hot-stone" {
		t.Fatalf("move between categories not persisted: %#v", fetched)
	}

	if err := repo.DeleteSubCategory(ctx, "sub-1"); err != nil {
		t.Fatalf("DeleteSubCategory failed: %v", err)
	}
	if err := repo.DeleteSubCategory(ctx, "sub-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubCategoryRepository_RequiresExistingCategory(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewSubCategoryRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	err := repo.CreateSubCategory(ctx, domain.SubCategory{
		ID:         "sub-1",
		CategoryID: "missing",
		Title:      "Orphan",
		Slug:       "orphan",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}

func TestSubCategoryRepository_List(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	categories := NewCategoryRepository(pool)
	repo := NewSubCategoryRepository(pool)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	seedCategory(t, categories, "cat-1", "Massages", "massages", base)

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("sub-%d", i)
		err := repo.CreateSubCategory(ctx, domain.SubCategory{
			ID:         id,
			CategoryID: "cat-1",
			Title:      "Sub " + id,
			Slug:       "sub-" + id,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("failed to seed subcategory %s: %v", id, err)
		}
	}

	subs, total, err := repo.ListSubCategories(ctx, 0, 3)
	if err != nil {
		t.Fatalf("ListSubCategories failed: %v", err)
	}
	if total != 4 || len(subs) != 3 || subs[0].ID != "sub-3" {
		t.Fatalf("expected newest first, total=%d %#v", total, subs)
	}
}
