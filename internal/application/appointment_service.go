package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

// appointmentTimeLayouts are the accepted forms for submitted start/end times.
var appointmentTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// AppointmentRepository captures the persistence operations needed by the
// appointment service.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment domain.Appointment) error
	GetAppointment(ctx context.Context, id string) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment domain.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, filter persistence.AppointmentFilter, offset, limit int) ([]domain.AppointmentListItem, int, error)
	CountAppointments(ctx context.Context, status *domain.AppointmentStatus) (int, error)
}

// AppointmentService orchestrates validation and persistence for appointments.
type AppointmentService struct {
	appointments AppointmentRepository
	pagination   PaginationSettings
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewAppointmentService wires dependencies for the appointment service.
func NewAppointmentService(appointments AppointmentRepository, pagination PaginationSettings, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AppointmentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AppointmentService{
		appointments: appointments,
		pagination:   pagination,
		idGenerator:  idGenerator,
		now:          now,
		logger:       logger,
	}
}

// List returns one page of appointments, newest first. An unrecognized status
// fails the request rather than silently returning unfiltered results.
func (s *AppointmentService) List(ctx context.Context, params ListAppointmentsParams) (AppointmentPage, error) {
	if s == nil {
		return AppointmentPage{}, fmt.Errorf("AppointmentService is nil")
	}

	filter := persistence.AppointmentFilter{}
	if params.Status != "" {
		status, err := domain.ParseAppointmentStatus(params.Status)
		if err != nil {
			vErr := &ValidationError{}
			vErr.add("status", "The selected status is invalid.")
			return AppointmentPage{}, vErr
		}
		filter.Status = &status
	}

	perPage := s.perPage(ctx)
	meta := domain.NewPageMeta(params.Page, perPage, 0)

	items, total, err := s.appointments.ListAppointments(ctx, filter, meta.Offset(), perPage)
	if err != nil {
		return AppointmentPage{}, err
	}

	return AppointmentPage{
		Items: items,
		Meta:  domain.NewPageMeta(meta.CurrentPage, perPage, total),
	}, nil
}

// Create validates input and persists a new appointment. The stored status is
// always scheduled regardless of any status value supplied by the caller.
func (s *AppointmentService) Create(ctx context.Context, input AppointmentInput) (domain.Appointment, error) {
	if s == nil {
		return domain.Appointment{}, fmt.Errorf("AppointmentService is nil")
	}

	normalized := normalizeAppointmentInput(input)
	start, end, vErr := validateAppointmentInput(normalized)
	if vErr.HasErrors() {
		return domain.Appointment{}, vErr
	}

	now := s.now()
	appointment := domain.Appointment{
		ID:          s.idGenerator(),
		ClientID:    normalized.ClientID,
		Title:       normalized.Title,
		Description: normalized.Description,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appointments.CreateAppointment(ctx, appointment); err != nil {
		return domain.Appointment{}, err
	}

	serviceLogger(ctx, s.logger, "AppointmentService", "Create", "appointment_id", appointment.ID).InfoContext(ctx, "appointment created")
	return appointment, nil
}

// Get retrieves an appointment for editing.
func (s *AppointmentService) Get(ctx context.Context, id string) (domain.Appointment, error) {
	if s == nil {
		return domain.Appointment{}, fmt.Errorf("AppointmentService is nil")
	}

	appointment, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return domain.Appointment{}, mapRepositoryError(err)
	}
	return appointment, nil
}

// Update validates input and replaces the fields of an existing appointment.
// The status is untouched; it changes only through its own lifecycle.
func (s *AppointmentService) Update(ctx context.Context, id string, input AppointmentInput) (domain.Appointment, error) {
	if s == nil {
		return domain.Appointment{}, fmt.Errorf("AppointmentService is nil")
	}

	existing, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return domain.Appointment{}, mapRepositoryError(err)
	}

	normalized := normalizeAppointmentInput(input)
	start, end, vErr := validateAppointmentInput(normalized)
	if vErr.HasErrors() {
		return domain.Appointment{}, vErr
	}

	updated := existing
	updated.ClientID = normalized.ClientID
	updated.Title = normalized.Title
	updated.Description = normalized.Description
	updated.StartTime = start
	updated.EndTime = end
	updated.UpdatedAt = s.now()

	if err := s.appointments.UpdateAppointment(ctx, updated); err != nil {
		return domain.Appointment{}, mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "AppointmentService", "Update", "appointment_id", id).InfoContext(ctx, "appointment updated")
	return updated, nil
}

// Delete hard-deletes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("AppointmentService is nil")
	}

	if err := s.appointments.DeleteAppointment(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "AppointmentService", "Delete", "appointment_id", id).InfoContext(ctx, "appointment deleted")
	return nil
}

// StatusCounts reports the appointment count per status member, with display
// metadata. One count query runs per status; the cardinality is three.
func (s *AppointmentService) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	if s == nil {
		return nil, fmt.Errorf("AppointmentService is nil")
	}

	counts := make([]StatusCount, 0, len(domain.AppointmentStatuses))
	for _, status := range domain.AppointmentStatuses {
		status := status
		count, err := s.appointments.CountAppointments(ctx, &status)
		if err != nil {
			return nil, err
		}
		counts = append(counts, StatusCount{
			Name:  status.Name(),
			Value: string(status),
			Count: count,
			Color: status.Color(),
		})
	}

	return counts, nil
}

func (s *AppointmentService) perPage(ctx context.Context) int {
	return paginationLimitOrDefault(ctx, s.pagination)
}

func normalizeAppointmentInput(input AppointmentInput) AppointmentInput {
	return AppointmentInput{
		ClientID:    strings.TrimSpace(input.ClientID),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StartTime:   strings.TrimSpace(input.StartTime),
		EndTime:     strings.TrimSpace(input.EndTime),
		Status:      strings.TrimSpace(input.Status),
	}
}

// validateAppointmentInput enforces the required fields. end >= start is
// deliberately not checked; callers may book zero or negative length slots.
func validateAppointmentInput(input AppointmentInput) (start, end time.Time, vErr *ValidationError) {
	vErr = &ValidationError{}

	if input.ClientID == "" {
		vErr.add("client_id", "The client name field is required.")
	}
	if input.Title == "" {
		vErr.add("title", "The title field is required.")
	}
	if input.Description == "" {
		vErr.add("description", "The description field is required.")
	}

	if input.StartTime == "" {
		vErr.add("start_time", "The start time field is required.")
	} else if parsed, err := parseAppointmentTime(input.StartTime); err != nil {
		vErr.add("start_time", "The start time is not a valid date.")
	} else {
		start = parsed
	}

	if input.EndTime == "" {
		vErr.add("end_time", "The end time field is required.")
	} else if parsed, err := parseAppointmentTime(input.EndTime); err != nil {
		vErr.add("end_time", "The end time is not a valid date.")
	} else {
		end = parsed
	}

	return start, end, vErr
}

func parseAppointmentTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range appointmentTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
