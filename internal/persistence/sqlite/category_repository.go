package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// CategoryRepository implements persistence.CategoryRepository on SQLite.
type CategoryRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewCategoryRepository creates a new SQLite category repository.
func NewCategoryRepository(pool *ConnectionPool) *CategoryRepository {
	return &CategoryRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateCategory inserts a new category row.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category domain.Category) error {
	if category.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO categories (id, title, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		category.ID,
		category.Title,
		category.Slug,
		category.Description,
		formatTime(category.CreatedAt),
		formatTime(category.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetCategory retrieves a category by id.
func (r *CategoryRepository) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	if id == "" {
		return domain.Category{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, title, slug, description, created_at, updated_at
		FROM categories
		WHERE id = ?
	`

	var category domain.Category
	var createdStr, updatedStr string
	err := r.helper.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.Description,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, persistence.ErrNotFound
		}
		return domain.Category{}, r.mapper.MapError(err)
	}

	if category.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.Category{}, err
	}
	if category.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return domain.Category{}, err
	}

	return category, nil
}

// UpdateCategory replaces the mutable fields of a category.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if category.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE categories
		SET title = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		category.Title,
		category.Slug,
		category.Description,
		formatTime(category.UpdatedAt),
		category.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// DeleteCategory hard-deletes a category by id.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// ListCategories returns one page of categories, newest first, plus the total
// row count.
func (r *CategoryRepository) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, int, error) {
	var total int
	if err := r.helper.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	query := `
		SELECT id, title, slug, description, created_at, updated_at
		FROM categories
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.helper.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, r.mapper.MapError(err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		var createdStr, updatedStr string

		err := rows.Scan(
			&category.ID,
			&category.Title,
			&category.Slug,
			&category.Description,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, 0, r.mapper.MapError(err)
		}

		if category.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, 0, err
		}
		if category.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, 0, err
		}

		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	return categories, total, nil
}
