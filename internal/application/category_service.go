package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/slug"
)

// CategoryRepository captures the persistence operations needed by the
// category service.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) error
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, int, error)
}

// CategoryService orchestrates persistence and slug derivation for categories.
// Mirroring the upstream admin, titles are not required; an empty title
// derives an empty slug.
type CategoryService struct {
	categories  CategoryRepository
	pagination  PaginationSettings
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewCategoryService wires dependencies for the category service.
func NewCategoryService(categories CategoryRepository, pagination PaginationSettings, idGenerator func() string, now func() time.Time, logger *slog.Logger) *CategoryService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{
		categories:  categories,
		pagination:  pagination,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// List returns one page of categories, newest first.
func (s *CategoryService) List(ctx context.Context, page int) (CategoryPage, error) {
	if s == nil {
		return CategoryPage{}, fmt.Errorf("CategoryService is nil")
	}

	perPage := paginationLimitOrDefault(ctx, s.pagination)
	meta := domain.NewPageMeta(page, perPage, 0)

	items, total, err := s.categories.ListCategories(ctx, meta.Offset(), perPage)
	if err != nil {
		return CategoryPage{}, err
	}

	return CategoryPage{
		Items: items,
		Meta:  domain.NewPageMeta(meta.CurrentPage, perPage, total),
	}, nil
}

// Create persists a new category with a slug derived from its title.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (domain.Category, error) {
	if s == nil {
		return domain.Category{}, fmt.Errorf("CategoryService is nil")
	}

	now := s.now()
	category := domain.Category{
		ID:          s.idGenerator(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	category.Slug = slug.Make(category.Title)

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}

	serviceLogger(ctx, s.logger, "CategoryService", "Create", "category_id", category.ID).InfoContext(ctx, "category created")
	return category, nil
}

// Get retrieves a category for editing.
func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	if s == nil {
		return domain.Category{}, fmt.Errorf("CategoryService is nil")
	}

	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, mapRepositoryError(err)
	}
	return category, nil
}

// Update replaces the fields of an existing category. The slug is recomputed
// from the current title on every update, whether the title changed or not.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (domain.Category, error) {
	if s == nil {
		return domain.Category{}, fmt.Errorf("CategoryService is nil")
	}

	existing, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, mapRepositoryError(err)
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = input.Description
	updated.Slug = slug.Make(updated.Title)
	updated.UpdatedAt = s.now()

	if err := s.categories.UpdateCategory(ctx, updated); err != nil {
		return domain.Category{}, mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "CategoryService", "Update", "category_id", id).InfoContext(ctx, "category updated")
	return updated, nil
}

// Delete hard-deletes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("CategoryService is nil")
	}

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "CategoryService", "Delete", "category_id", id).InfoContext(ctx, "category deleted")
	return nil
}

func paginationLimitOrDefault(ctx context.Context, pagination PaginationSettings) int {
	if pagination == nil {
		return defaultPaginationLimit
	}
	return pagination.PaginationLimit(ctx)
}
