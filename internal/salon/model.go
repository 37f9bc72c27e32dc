package salon

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// BlocksSlot reports whether an appointment in this status still occupies its
// staff/date/time slot. Cancelled and completed appointments free the slot.
func (s AppointmentStatus) BlocksSlot() bool {
	return s != StatusCancelled && s != StatusCompleted
}

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerCreate struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

type CustomerUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

type Service struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Duration    int // minutes
	Price       decimal.Decimal
	Category    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ServiceCreate struct {
	Name        string
	Description *string
	Duration    int
	Price       decimal.Decimal
	Category    string
	IsActive    *bool // nil means active
}

type ServiceUpdate struct {
	Name        *string
	Description *string
	Duration    *int
	Price       *decimal.Decimal
	Category    *string
	IsActive    *bool
}

type Staff struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       *string
	Role        string
	Specialties []string
	IsActive    bool
	HireDate    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type StaffCreate struct {
	Name        string
	Email       string
	Phone       *string
	Role        string
	Specialties []string
	IsActive    *bool // nil means active
	HireDate    *time.Time
}

type StaffUpdate struct {
	Name        *string
	Email       *string
	Phone       *string
	Role        *string
	Specialties []string // nil means unchanged
	IsActive    *bool
	HireDate    *time.Time
}

type Appointment struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	StaffID    uuid.UUID
	ServiceID  uuid.UUID
	Date       time.Time     // UTC midnight of the appointment day
	Time       time.Duration // offset since midnight
	Status     AppointmentStatus
	Notes      *string
	Price      *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AppointmentCreate struct {
	CustomerID uuid.UUID
	StaffID    uuid.UUID
	ServiceID  uuid.UUID
	Date       time.Time
	Time       time.Duration
	Status     AppointmentStatus // empty means scheduled
	Notes      *string
	Price      *decimal.Decimal
}

type AppointmentUpdate struct {
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
	ServiceID  *uuid.UUID
	Date       *time.Time
	Time       *time.Duration
	Status     *AppointmentStatus
	Notes      *string
	Price      *decimal.Decimal
}

// DateOnly truncates t to a UTC calendar date, the representation stored in
// the appointment_date column and used for conflict grouping.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset since midnight.
func ParseClock(s string) (time.Duration, error) {
	var layout string
	switch len(s) {
	case 5:
		layout = "15:04"
	case 8:
		layout = "15:04:05"
	default:
		return 0, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// FormatClock renders an offset since midnight as "HH:MM:SS".
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
