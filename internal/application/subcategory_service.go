package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
	"github.com/example/appointment-admin/internal/slug"
)

// SubCategoryRepository captures the persistence operations needed by the
// subcategory service.
type SubCategoryRepository interface {
	CreateSubCategory(ctx context.Context, subcategory domain.SubCategory) error
	GetSubCategory(ctx context.Context, id string) (domain.SubCategory, error)
	UpdateSubCategory(ctx context.Context, subcategory domain.SubCategory) error
	DeleteSubCategory(ctx context.Context, id string) error
	ListSubCategories(ctx context.Context, offset, limit int) ([]domain.SubCategory, int, error)
}

// CategoryResolver checks that a subcategory's parent category exists.
type CategoryResolver interface {
	GetCategory(ctx context.Context, id string) (domain.Category, error)
}

// SubCategoryService orchestrates validation, slug derivation, and
// persistence for subcategories.
type SubCategoryService struct {
	subcategories SubCategoryRepository
	categories    CategoryResolver
	pagination    PaginationSettings
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
}

// NewSubCategoryService wires dependencies for the subcategory service.
func NewSubCategoryService(subcategories SubCategoryRepository, categories CategoryResolver, pagination PaginationSettings, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SubCategoryService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubCategoryService{
		subcategories: subcategories,
		categories:    categories,
		pagination:    pagination,
		idGenerator:   idGenerator,
		now:           now,
		logger:        logger,
	}
}

// List returns one page of subcategories, newest first.
func (s *SubCategoryService) List(ctx context.Context, page int) (SubCategoryPage, error) {
	if s == nil {
		return SubCategoryPage{}, fmt.Errorf("SubCategoryService is nil")
	}

	perPage := paginationLimitOrDefault(ctx, s.pagination)
	meta := domain.NewPageMeta(page, perPage, 0)

	items, total, err := s.subcategories.ListSubCategories(ctx, meta.Offset(), perPage)
	if err != nil {
		return SubCategoryPage{}, err
	}

	return SubCategoryPage{
		Items: items,
		Meta:  domain.NewPageMeta(meta.CurrentPage, perPage, total),
	}, nil
}

// Create persists a new subcategory under an existing category, with a slug
// derived from its title.
func (s *SubCategoryService) Create(ctx context.Context, input SubCategoryInput) (domain.SubCategory, error) {
	if s == nil {
		return domain.SubCategory{}, fmt.Errorf("SubCategoryService is nil")
	}

	categoryID := strings.TrimSpace(input.CategoryID)
	if err := s.resolveCategory(ctx, categoryID); err != nil {
		return domain.SubCategory{}, err
	}

	now := s.now()
	subcategory := domain.SubCategory{
		ID:          s.idGenerator(),
		CategoryID:  categoryID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	subcategory.Slug = slug.Make(subcategory.Title)

	if err := s.subcategories.CreateSubCategory(ctx, subcategory); err != nil {
		return domain.SubCategory{}, err
	}

	serviceLogger(ctx, s.logger, "SubCategoryService", "Create", "subcategory_id", subcategory.ID).InfoContext(ctx, "subcategory created")
	return subcategory, nil
}

// Get retrieves a subcategory for editing.
func (s *SubCategoryService) Get(ctx context.Context, id string) (domain.SubCategory, error) {
	if s == nil {
		return domain.SubCategory{}, fmt.Errorf("SubCategoryService is nil")
	}

	subcategory, err := s.subcategories.GetSubCategory(ctx, id)
	if err != nil {
		return domain.SubCategory{}, mapRepositoryError(err)
	}
	return subcategory, nil
}

// Update replaces the fields of an existing subcategory. The slug is
// recomputed from the current title unconditionally, so an update that only
// touches the description re-stores an identical slug.
func (s *SubCategoryService) Update(ctx context.Context, id string, input SubCategoryInput) (domain.SubCategory, error) {
	if s == nil {
		return domain.SubCategory{}, fmt.Errorf("SubCategoryService is nil")
	}

	existing, err := s.subcategories.GetSubCategory(ctx, id)
	if err != nil {
		return domain.SubCategory{}, mapRepositoryError(err)
	}

	categoryID := strings.TrimSpace(input.CategoryID)
	if err := s.resolveCategory(ctx, categoryID); err != nil {
		return domain.SubCategory{}, err
	}

	updated := existing
	updated.CategoryID = categoryID
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = input.Description
	updated.Slug = slug.Make(updated.Title)
	updated.UpdatedAt = s.now()

	if err := s.subcategories.UpdateSubCategory(ctx, updated); err != nil {
		return domain.SubCategory{}, mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "SubCategoryService", "Update", "subcategory_id", id).InfoContext(ctx, "subcategory updated")
	return updated, nil
}

// Delete hard-deletes a subcategory.
func (s *SubCategoryService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("SubCategoryService is nil")
	}

	if err := s.subcategories.DeleteSubCategory(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "SubCategoryService", "Delete", "subcategory_id", id).InfoContext(ctx, "subcategory deleted")
	return nil
}

// resolveCategory fails with a validation error when the category id is
// absent or does not reference an existing category.
func (s *SubCategoryService) resolveCategory(ctx context.Context, categoryID string) error {
	vErr := &ValidationError{}

	if categoryID == "" {
		vErr.add("category_id", "The category id field is required.")
		return vErr
	}
	if s.categories == nil {
		return nil
	}

	if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			vErr.add("category_id", "The selected category id is invalid.")
			return vErr
		}
		return err
	}

	return nil
}
