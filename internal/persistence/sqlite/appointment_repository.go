package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// AppointmentRepository implements persistence.AppointmentRepository on SQLite.
type AppointmentRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewAppointmentRepository creates a new SQLite appointment repository.
func NewAppointmentRepository(pool *ConnectionPool) *AppointmentRepository {
	return &AppointmentRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateAppointment inserts a new appointment row.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment domain.Appointment) error {
	if appointment.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO appointments (id, client_id, title, description, start_time, end_time, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.Title,
		appointment.Description,
		formatTime(appointment.StartTime),
		formatTime(appointment.EndTime),
		string(appointment.Status),
		formatTime(appointment.CreatedAt),
		formatTime(appointment.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// GetAppointment retrieves an appointment by id.
func (r *AppointmentRepository) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	if id == "" {
		return domain.Appointment{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, client_id, title, description, start_time, end_time, status, created_at, updated_at
		FROM appointments
		WHERE id = ?
	`

	appointment, err := scanAppointment(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, persistence.ErrNotFound
		}
		return domain.Appointment{}, r.mapper.MapError(err)
	}

	return appointment, nil
}

// UpdateAppointment replaces all mutable fields of an appointment.
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment domain.Appointment) error {
	if appointment.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE appointments
		SET client_id = ?, title = ?, description = ?, start_time = ?, end_time = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		appointment.ClientID,
		appointment.Title,
		appointment.Description,
		formatTime(appointment.StartTime),
		formatTime(appointment.EndTime),
		string(appointment.Status),
		formatTime(appointment.UpdatedAt),
		appointment.ID,
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

// DeleteAppointment hard-deletes an appointment by id.
func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `DELETE FROM appointments WHERE id = ?`, id)
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

// ListAppointments returns one page of appointments with embedded client
// summaries, newest first, plus the total row count for the filter.
func (r *AppointmentRepository) ListAppointments(ctx context.Context, filter persistence.AppointmentFilter, offset, limit int) ([]domain.AppointmentListItem, int, error) {
	where := ""
	args := []any{}
	if filter.Status != nil {
		where = "WHERE a.status = ?"
		args = append(args, string(*filter.Status))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM appointments a %s`, where)
	var total int
	if err := r.helper.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.client_id, a.title, a.description, a.start_time, a.end_time, a.status, a.created_at, a.updated_at,
		       COALESCE(c.first_name, ''), COALESCE(c.last_name, '')
		FROM appointments a
		LEFT JOIN clients c ON c.id = a.client_id
		%s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, limit, offset)

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.mapper.MapError(err)
	}
	defer rows.Close()

	var items []domain.AppointmentListItem
	for rows.Next() {
		var item domain.AppointmentListItem
		var startStr, endStr, createdStr, updatedStr, status string

		err := rows.Scan(
			&item.ID,
			&item.ClientID,
			&item.Title,
			&item.Description,
			&startStr,
			&endStr,
			&status,
			&createdStr,
			&updatedStr,
			&item.Client.FirstName,
			&item.Client.LastName,
		)
		if err != nil {
			return nil, 0, r.mapper.MapError(err)
		}

		item.Status = domain.AppointmentStatus(status)
		item.Client.ID = item.ClientID
		if item.StartTime, err = parseTime(startStr); err != nil {
			return nil, 0, err
		}
		if item.EndTime, err = parseTime(endStr); err != nil {
			return nil, 0, err
		}
		if item.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, 0, err
		}
		if item.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, 0, err
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapper.MapError(err)
	}

	return items, total, nil
}

// CountAppointments counts appointments, optionally restricted to one status.
func (r *AppointmentRepository) CountAppointments(ctx context.Context, status *domain.AppointmentStatus) (int, error) {
	query := `SELECT COUNT(*) FROM appointments`
	args := []any{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}

	var count int
	if err := r.helper.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, r.mapper.MapError(err)
	}
	return count, nil
}

func scanAppointment(row *sql.Row) (domain.Appointment, error) {
	var appointment domain.Appointment
	var startStr, endStr, createdStr, updatedStr, status string

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.Title,
		&appointment.Description,
		&startStr,
		&endStr,
		&status,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return domain.Appointment{}, err
	}

	appointment.Status = domain.AppointmentStatus(status)
	if appointment.StartTime, err = parseTime(startStr); err != nil {
		return domain.Appointment{}, err
	}
	if appointment.EndTime, err = parseTime(endStr); err != nil {
		return domain.Appointment{}, err
	}
	if appointment.CreatedAt, err = parseTime(createdStr); err != nil {
		return domain.Appointment{}, err
	}
	if appointment.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return domain.Appointment{}, err
	}

	return appointment, nil
}
