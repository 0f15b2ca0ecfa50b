// Package persistence declares the repository contracts implemented by the
// storage layer. Listings are ordered by creation time descending.
package persistence

import (
	"context"
	"time"

	"github.com/example/appointment-admin/internal/domain"
)

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	Status *domain.AppointmentStatus
}

// AppointmentRepository exposes CRUD and counting operations for appointments.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment domain.Appointment) error
	GetAppointment(ctx context.Context, id string) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment domain.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	// ListAppointments returns one page of appointments with their client
	// summaries plus the total row count for the filter.
	ListAppointments(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]domain.AppointmentListItem, int, error)
	CountAppointments(ctx context.Context, status *domain.AppointmentStatus) (int, error)
}

// ClientRepository reads client profiles.
type ClientRepository interface {
	GetClient(ctx context.Context, id string) (domain.Client, error)
	// ListLatestClients returns at most limit clients, newest first.
	ListLatestClients(ctx context.Context, limit int) ([]domain.Client, error)
}

// CategoryRepository exposes CRUD operations for categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) error
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, int, error)
}

// SubCategoryRepository exposes CRUD operations for subcategories.
type SubCategoryRepository interface {
	CreateSubCategory(ctx context.Context, subcategory domain.SubCategory) error
	GetSubCategory(ctx context.Context, id string) (domain.SubCategory, error)
	UpdateSubCategory(ctx context.Context, subcategory domain.SubCategory) error
	DeleteSubCategory(ctx context.Context, id string) error
	ListSubCategories(ctx context.Context, offset, limit int) ([]domain.SubCategory, int, error)
}

// UserRepository exposes CRUD, search, and counting operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, id string) error
	// DeleteUsers removes the given ids in a single batch statement. Ids that
	// do not resolve are ignored.
	DeleteUsers(ctx context.Context, ids []string) error
	// ListUsers filters by a case-insensitive name substring when search is
	// non-empty.
	ListUsers(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error)
	// EmailInUse reports whether another user than excludeID holds the email.
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
	// CountUsersCreatedBetween counts users created inside the inclusive
	// window. Nil bounds leave the window open on that side.
	CountUsersCreatedBetween(ctx context.Context, from, to *time.Time) (int, error)
}

// SettingRepository stores key/value settings rows.
type SettingRepository interface {
	GetAllSettings(ctx context.Context) (map[string]string, error)
	// SetSettings upserts every entry of the mapping.
	SetSettings(ctx context.Context, values map[string]string) error
}
