package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
type UserRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateUser inserts a new user row. Emails are stored lower-cased so the
// UNIQUE index is case-insensitive in practice.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) error {
	if user.ID == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		user.ID,
		user.Name,
		normalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetUser retrieves a user by id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	user, err := scanUser(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, persistence.ErrNotFound
		}
		return domain.User{}, r.mapper.MapError(err)
	}

	return user, nil
}

// UpdateUser replaces the mutable fields of a user.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return persistence.ErrNotFound
	}
	if user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		user.Name,
		normalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		formatTime(user.UpdatedAt),
		user.ID,
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

// DeleteUser hard-deletes a single user by id.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
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

// DeleteUsers removes the given ids in one batch statement. Ids that do not
// resolve are ignored; an empty set is a no-op.
func (r *UserRepository) DeleteUsers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	query := fmt.Sprintf(`DELETE FROM users WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := r.helper.Exec(ctx, query, args...); err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// ListUsers returns one page of users, newest first, plus the total row count.
// A non-empty search restricts to names containing the term, case-insensitively.
func (r *UserRepository) ListUsers(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = "WHERE name LIKE ? ESCAPE '\\'"
		args = append(args, "%"+escapeLike(search)+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where)
	if err := r.helper.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, limit, offset)

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.mapper.MapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var createdStr, updatedStr string

		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, 0, r.mapper.MapError(err)
		}

		if user.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, 0, err
		}
		if user.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, 0, err
		}

		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	return users, total, nil
}

// EmailInUse reports whether a user other than excludeID holds the email.
func (r *UserRepository) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`

	var count int
	if err := r.helper.QueryRow(ctx, query, normalizeEmail(email), excludeID).Scan(&count); err != nil {
		return false, r.mapper.MapError(err)
	}
	return count > 0, nil
}

// CountUsersCreatedBetween counts users created inside the inclusive window.
// Nil bounds leave the window open on that side.
func (r *UserRepository) CountUsersCreatedBetween(ctx context.Context, from, to *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM users`
	conds := []string{}
	args := []any{}
	if from != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, formatTime(*from))
	}
	if to != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, formatTime(*to))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var count int
	if err := r.helper.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, r.mapper.MapError(err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var createdStr, updatedStr string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return domain.User{}, err
	}

	if user.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
