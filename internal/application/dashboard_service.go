package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/appointment-admin/internal/domain"
)

// AppointmentCounter counts appointments for the dashboard.
type AppointmentCounter interface {
	CountAppointments(ctx context.Context, status *domain.AppointmentStatus) (int, error)
}

// UserCounter counts users for the dashboard.
type UserCounter interface {
	CountUsersCreatedBetween(ctx context.Context, from, to *time.Time) (int, error)
}

// DashboardService computes the read-only count projections shown on the
// admin dashboard. Every operation is idempotent and side-effect free.
type DashboardService struct {
	appointments AppointmentCounter
	users        UserCounter
	now          func() time.Time
	logger       *slog.Logger
}

// NewDashboardService wires dependencies for the dashboard service.
func NewDashboardService(appointments AppointmentCounter, users UserCounter, now func() time.Time, logger *slog.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		appointments: appointments,
		users:        users,
		now:          now,
		logger:       logger,
	}
}

// AppointmentsCount returns the number of appointments, filtered to one
// status when the value names an enum member. Any other value leaves the
// count unrestricted, matching the upstream dashboard.
func (s *DashboardService) AppointmentsCount(ctx context.Context, statusFilter string) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("DashboardService is nil")
	}

	var status *domain.AppointmentStatus
	if parsed, err := domain.ParseAppointmentStatus(statusFilter); err == nil {
		status = &parsed
	}

	return s.appointments.CountAppointments(ctx, status)
}

// UsersCount returns the number of users created inside the named date
// range's inclusive window ending now. Unknown or empty ranges leave the
// count unrestricted.
func (s *DashboardService) UsersCount(ctx context.Context, dateRange string) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("DashboardService is nil")
	}

	now := s.now()
	from := rangeStart(dateRange, now)
	var to *time.Time
	if from != nil {
		to = &now
	}

	return s.users.CountUsersCreatedBetween(ctx, from, to)
}

// rangeStart maps a date range preset to the inclusive window start. The
// boundary instant itself counts: a user created exactly at the start of the
// current day is inside "today".
func rangeStart(dateRange string, now time.Time) *time.Time {
	var start time.Time
	switch dateRange {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "30_days":
		start = now.AddDate(0, 0, -30)
	case "60_days":
		start = now.AddDate(0, 0, -60)
	case "360_days":
		start = now.AddDate(0, 0, -360)
	case "month_to_date":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "year_to_date":
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &start
}
