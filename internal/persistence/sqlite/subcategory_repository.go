package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// SubCategoryRepository implements persistence.SubCategoryRepository on SQLite.
type SubCategoryRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewSubCategoryRepository creates a new SQLite subcategory repository.
func NewSubCategoryRepository(pool *ConnectionPool) *SubCategoryRepository {
	return &SubCategoryRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateSubCategory inserts a new subcategory row. A missing category surfaces
// as persistence.ErrForeignKeyViolation.
func (r *SubCategoryRepository) CreateSubCategory(ctx context.Context, subcategory domain.SubCategory) error {
	if subcategory.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO subcategories (id, category_id, title, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		subcategory.ID,
		subcategory.CategoryID,
		subcategory.Title,
		subcategory.Slug,
		subcategory.Description,
		formatTime(subcategory.CreatedAt),
		formatTime(subcategory.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetSubCategory retrieves a subcategory by id.
func (r *SubCategoryRepository) GetSubCategory(ctx context.Context, id string) (domain.SubCategory, error) {
	if id == "" {
		return domain.SubCategory{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, category_id, title, slug, description, created_at, updated_at
		FROM subcategories
		WHERE id = ?
	`

	var subcategory domain.SubCategory
	var createdStr, updatedStr string
	err := r.helper.QueryRow(ctx, query, id).Scan(
		&subcategory.ID,
		&subcategory.CategoryID,
		&subcategory.Title,
		&subcategory.Slug,
		&subcategory.Description,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SubCategory{}, persistence.ErrNotFound
		}
		return domain.SubCategory{}, r.mapper.MapError(err)
	}

	if subcategory.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.SubCategory{}, err
	}
	if subcategory.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return domain.SubCategory{}, err
	}

	return subcategory, nil
}

// UpdateSubCategory replaces the mutable fields of a subcategory.
func (r *SubCategoryRepository) UpdateSubCategory(ctx context.Context, subcategory domain.SubCategory) error {
	if subcategory.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE subcategories
		SET category_id = ?, title = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		subcategory.CategoryID,
		subcategory.Title,
		subcategory.Slug,
		subcategory.Description,
		formatTime(subcategory.UpdatedAt),
		subcategory.ID,
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

// DeleteSubCategory hard-deletes a subcategory by id.
func (r *SubCategoryRepository) DeleteSubCategory(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM subcategories WHERE id = ?`, id)
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

// ListSubCategories returns one page of subcategories, newest first, plus the
// total row count.
func (r *SubCategoryRepository) ListSubCategories(ctx context.Context, offset, limit int) ([]domain.SubCategory, int, error) {
	var total int
	if err := r.helper.QueryRow(ctx, `SELECT COUNT(*) FROM subcategories`).Scan(&total); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	query := `
		SELECT id, category_id, title, slug, description, created_at, updated_at
		FROM subcategories
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.helper.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, r.mapper.MapError(err)
	}
	defer rows.Close()

	var subcategories []domain.SubCategory
	for rows.Next() {
		var subcategory domain.SubCategory
		var createdStr, updatedStr string

		err := rows.Scan(
			&subcategory.ID,
			&subcategory.CategoryID,
			&subcategory.Title,
			&subcategory.Slug,
			&subcategory.Description,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, 0, r.mapper.MapError(err)
		}

		if subcategory.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, 0, err
		}
		if subcategory.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, 0, err
		}

		subcategories = append(subcategories, subcategory)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	return subcategories, total, nil
}
