package domain

import "fmt"

// AppointmentStatus enumerates the lifecycle states of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCancelled,
}

var statusNames = map[AppointmentStatus]string{
	StatusScheduled: "SCHEDULED",
	StatusConfirmed: "CONFIRMED",
	StatusCancelled: "CANCELLED",
}

// statusColors maps each status to the display color used by filter chips.
var statusColors = map[AppointmentStatus]string{
	StatusScheduled: "primary",
	StatusConfirmed: "success",
	StatusCancelled: "danger",
}

// ParseAppointmentStatus converts a wire value into a status, rejecting
// anything outside the enumeration.
func ParseAppointmentStatus(value string) (AppointmentStatus, error) {
	status := AppointmentStatus(value)
	if _, ok := statusNames[status]; !ok {
		return "", fmt.Errorf("unknown appointment status %q", value)
	}
	return status, nil
}

// Name returns the upper-cased display name of the status.
func (s AppointmentStatus) Name() string {
	return statusNames[s]
}

// Color returns the display color associated with the status.
func (s AppointmentStatus) Color() string {
	return statusColors[s]
}

// Valid reports whether the status is a member of the enumeration.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}
