// Package testfixtures supplies deterministic clocks, identifier sequences
// and record builders shared by the service and repository tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/appointment-admin/internal/domain"
)

var (
	clientCounter      uint64
	appointmentCounter uint64
	categoryCounter    uint64
	subCategoryCounter uint64
	userCounter        uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ClientOption configures a generated client fixture.
type ClientOption func(*domain.Client)

// NewClientFixture returns a deterministic client record with optional overrides.
func NewClientFixture(opts ...ClientOption) domain.Client {
	idx := atomic.AddUint64(&clientCounter, 1)
	id := fmt.Sprintf("client-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	client := domain.Client{
		ID:        id,
		FirstName: fmt.Sprintf("First%03d", idx),
		LastName:  fmt.Sprintf("Last%03d", idx),
		Email:     fmt.Sprintf("%s@example.com", id),
		Phone:     fmt.Sprintf("555-%04d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&client)
	}
	return client
}

// WithClientID overrides the generated client ID.
func WithClientID(id string) ClientOption {
	return func(c *domain.Client) {
		c.ID = id
	}
}

// WithClientCreatedAt overrides the client creation timestamp.
func WithClientCreatedAt(t time.Time) ClientOption {
	return func(c *domain.Client) {
		c.CreatedAt = t
		c.UpdatedAt = t
	}
}

// AppointmentOption configures a generated appointment fixture.
type AppointmentOption func(*domain.Appointment)

// NewAppointmentFixture returns a deterministic appointment record. The
// appointment is scheduled unless overridden, one hour long, and references a
// generated client unless WithAppointmentClientID is supplied.
func NewAppointmentFixture(opts ...AppointmentOption) domain.Appointment {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	start := referenceTime.Add(24 * time.Hour).Add(time.Duration(idx) * time.Hour)
	appointment := domain.Appointment{
		ID:          fmt.Sprintf("appointment-%03d", idx),
		ClientID:    fmt.Sprintf("client-%03d", idx),
		Title:       fmt.Sprintf("Appointment %03d", idx),
		Description: fmt.Sprintf("Description %03d", idx),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      domain.StatusScheduled,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&appointment)
	}
	return appointment
}

// WithAppointmentID overrides the generated appointment ID.
func WithAppointmentID(id string) AppointmentOption {
	return func(a *domain.Appointment) {
		a.ID = id
	}
}

// WithAppointmentClientID points the appointment at an existing client.
func WithAppointmentClientID(clientID string) AppointmentOption {
	return func(a *domain.Appointment) {
		a.ClientID = clientID
	}
}

// WithAppointmentStatus overrides the appointment status.
func WithAppointmentStatus(status domain.AppointmentStatus) AppointmentOption {
	return func(a *domain.Appointment) {
		a.Status = status
	}
}

// WithAppointmentTimes overrides the start and end instants.
func WithAppointmentTimes(start, end time.Time) AppointmentOption {
	return func(a *domain.Appointment) {
		a.StartTime = start
		a.EndTime = end
	}
}

// CategoryOption configures a generated category fixture.
type CategoryOption func(*domain.Category)

// NewCategoryFixture returns a deterministic category record.
func NewCategoryFixture(opts ...CategoryOption) domain.Category {
	idx := atomic.AddUint64(&categoryCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	category := domain.Category{
		ID:          fmt.Sprintf("category-%03d", idx),
		Title:       fmt.Sprintf("Category %03d", idx),
		Slug:        fmt.Sprintf("category-%03d", idx),
		Description: fmt.Sprintf("Category description %03d", idx),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&category)
	}
	return category
}

// WithCategoryID overrides the generated category ID.
func WithCategoryID(id string) CategoryOption {
	return func(c *domain.Category) {
		c.ID = id
	}
}

// SubCategoryOption configures a generated subcategory fixture.
type SubCategoryOption func(*domain.SubCategory)

// NewSubCategoryFixture returns a deterministic subcategory record.
func NewSubCategoryFixture(opts ...SubCategoryOption) domain.SubCategory {
	idx := atomic.AddUint64(&subCategoryCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	subcategory := domain.SubCategory{
		ID:          fmt.Sprintf("subcategory-%03d", idx),
		CategoryID:  fmt.Sprintf("category-%03d", idx),
		Title:       fmt.Sprintf("SubCategory %03d", idx),
		Slug:        fmt.Sprintf("subcategory-%03d", idx),
		Description: fmt.Sprintf("SubCategory description %03d", idx),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&subcategory)
	}
	return subcategory
}

// WithSubCategoryID overrides the generated subcategory ID.
func WithSubCategoryID(id string) SubCategoryOption {
	return func(s *domain.SubCategory) {
		s.ID = id
	}
}

// WithSubCategoryCategoryID points the subcategory at an existing category.
func WithSubCategoryCategoryID(categoryID string) SubCategoryOption {
	return func(s *domain.SubCategory) {
		s.CategoryID = categoryID
	}
}

// UserOption configures a generated user fixture.
type UserOption func(*domain.User)

// NewUserFixture returns a deterministic user record.
func NewUserFixture(opts ...UserOption) domain.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := domain.User{
		ID:           id,
		Name:         fmt.Sprintf("User %03d", idx),
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Role:         "staff",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *domain.User) {
		u.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(u *domain.User) {
		u.Name = name
	}
}

// WithUserRole overrides the assigned role.
func WithUserRole(role string) UserOption {
	return func(u *domain.User) {
		u.Role = role
	}
}

// WithUserCreatedAt overrides the user creation timestamp.
func WithUserCreatedAt(t time.Time) UserOption {
	return func(u *domain.User) {
		u.CreatedAt = t
		u.UpdatedAt = t
	}
}
