package salon

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// scanCap bounds the in-memory scan-and-filter queries (name search, distinct
// role/category listings, upcoming appointments, conflict candidates). The
// store cannot filter these predicates natively, so repositories fetch at most
// scanCap rows and filter application-side.
const scanCap = 1000

// CustomerRepository contains all store interactions for customers.
type CustomerRepository interface {
	Insert(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context, limit int) ([]Customer, error)
	SearchByName(ctx context.Context, term string, limit int) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// StaffRepository contains all store interactions for staff members.
type StaffRepository interface {
	Insert(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	List(ctx context.Context, limit int) ([]Staff, error)
	ListActive(ctx context.Context, limit int) ([]Staff, error)
	ListByRole(ctx context.Context, role string, activeOnly bool, limit int) ([]Staff, error)
	ListBySpecialty(ctx context.Context, specialty string, limit int) ([]Staff, error)
	SearchByName(ctx context.Context, term string, limit int) ([]Staff, error)
	Roles(ctx context.Context) ([]string, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// ServiceRepository contains all store interactions for services.
type ServiceRepository interface {
	Insert(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context, limit int) ([]Service, error)
	ListActive(ctx context.Context, limit int) ([]Service, error)
	ListByCategory(ctx context.Context, category string, activeOnly bool, limit int) ([]Service, error)
	SearchByName(ctx context.Context, term string, limit int) ([]Service, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// AppointmentRepository contains all store interactions for appointments.
type AppointmentRepository interface {
	Insert(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, limit int) ([]Appointment, error)
	ByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]Appointment, error)
	ByStaff(ctx context.Context, staffID uuid.UUID, limit int) ([]Appointment, error)
	ByService(ctx context.Context, serviceID uuid.UUID, limit int) ([]Appointment, error)
	ByDate(ctx context.Context, date time.Time, limit int) ([]Appointment, error)
	ByDateAndStaff(ctx context.Context, date time.Time, staffID uuid.UUID, limit int) ([]Appointment, error)
	ByStatus(ctx context.Context, status AppointmentStatus, limit int) ([]Appointment, error)
	Upcoming(ctx context.Context, limit int) ([]Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status AppointmentStatus) (int, error)
}
