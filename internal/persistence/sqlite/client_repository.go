package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// ClientRepository implements persistence.ClientRepository on SQLite.
type ClientRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(pool *ConnectionPool) *ClientRepository {
	return &ClientRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetClient retrieves a client by id.
func (r *ClientRepository) GetClient(ctx context.Context, id string) (domain.Client, error) {
	if id == "" {
		return domain.Client{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM clients
		WHERE id = ?
	`

	client, err := scanClient(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, persistence.ErrNotFound
		}
		return domain.Client{}, r.mapper.MapError(err)
	}

	return client, nil
}

// ListLatestClients returns at most limit clients ordered newest first.
func (r *ClientRepository) ListLatestClients(ctx context.Context, limit int) ([]domain.Client, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.helper.Query(ctx, query, limit)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var client domain.Client
		var createdStr, updatedStr string

		err := rows.Scan(
			&client.ID,
			&client.FirstName,
			&client.LastName,
			&client.Email,
			&client.Phone,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}

		if client.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, err
		}
		if client.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return clients, nil
}

// CreateClient inserts a client row. Clients are read-only through the API;
// this exists for seeding and tests.
func (r *ClientRepository) CreateClient(ctx context.Context, client domain.Client) error {
	if client.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO clients (id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.Email,
		client.Phone,
		formatTime(client.CreatedAt),
		formatTime(client.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

func scanClient(row *sql.Row) (domain.Client, error) {
	var client domain.Client
	var createdStr, updatedStr string

	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Email,
		&client.Phone,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return domain.Client{}, err
	}

	if client.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.Client{}, err
	}
	if client.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}
