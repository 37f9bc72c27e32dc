package salon

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrStaffInactive       = errors.New("staff member is inactive")
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceInactive     = errors.New("service is inactive")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrEmailExists signals that an email is already held by another
	// customer or staff record.
	ErrEmailExists = errors.New("email is already in use")

	// ErrScheduleConflict signals that the staff member already holds a
	// non-cancelled, non-completed appointment at the requested date/time.
	ErrScheduleConflict = errors.New("staff member is not available at the requested time")

	// ErrBookingContended signals that another request holds the booking
	// lock for the same staff member and day. Callers should retry.
	ErrBookingContended = errors.New("time slot is currently being booked, please retry")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
