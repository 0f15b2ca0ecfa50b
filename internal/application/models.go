package application

import "github.com/example/appointment-admin/internal/domain"

// AppointmentInput captures caller provided appointment fields. Times arrive
// as form strings and are parsed during validation. A supplied status is
// accepted but ignored on create; new appointments are always scheduled.
type AppointmentInput struct {
	ClientID    string
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Status      string
}

// ListAppointmentsParams narrows and pages appointment listings.
type ListAppointmentsParams struct {
	Status string
	Page   int
}

// AppointmentPage is one page of appointment list items.
type AppointmentPage struct {
	Items []domain.AppointmentListItem
	Meta  domain.PageMeta
}

// StatusCount reports how many appointments hold one status, with the display
// metadata the filter chips need.
type StatusCount struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// CategoryInput captures caller provided category fields.
type CategoryInput struct {
	Title       string
	Description string
}

// CategoryPage is one page of categories.
type CategoryPage struct {
	Items []domain.Category
	Meta  domain.PageMeta
}

// SubCategoryInput captures caller provided subcategory fields.
type SubCategoryInput struct {
	CategoryID  string
	Title       string
	Description string
}

// SubCategoryPage is one page of subcategories.
type SubCategoryPage struct {
	Items []domain.SubCategory
	Meta  domain.PageMeta
}

// UserInput captures caller provided user attributes. Password is optional on
// update; when empty the stored hash is retained.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ListUsersParams narrows and pages user listings.
type ListUsersParams struct {
	Query string
	Page  int
}

// UserPage is one page of users.
type UserPage struct {
	Items []domain.User
	Meta  domain.PageMeta
}

// SettingsInput captures the settings update payload. PaginationLimit is a
// pointer so a missing field is distinguishable from zero.
type SettingsInput struct {
	AppName         string
	DateFormat      string
	PaginationLimit *int
}
