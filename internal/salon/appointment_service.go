package salon

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	redisclient "github.com/glowdesk/salon-backend/internal/redis"
)

// CustomerDirectory is the slice of CustomerService the appointment service
// depends on.
type CustomerDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) bool
}

// StaffDirectory is the slice of StaffService the appointment service depends on.
type StaffDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) bool
	IsActive(ctx context.Context, id uuid.UUID) bool
}

// ServiceCatalog is the slice of ServiceCatalogService the appointment service
// depends on.
type ServiceCatalog interface {
	Exists(ctx context.Context, id uuid.UUID) bool
	IsActive(ctx context.Context, id uuid.UUID) bool
}

// AppointmentService orchestrates cross-entity validation and
// scheduling-conflict detection before touching the repository.
type AppointmentService struct {
	repo      AppointmentRepository
	customers CustomerDirectory
	staff     StaffDirectory
	services  ServiceCatalog
	locker    redisclient.Locker
	log       logrus.FieldLogger
}

func NewAppointmentService(
	repo AppointmentRepository,
	customers CustomerDirectory,
	staff StaffDirectory,
	services ServiceCatalog,
	locker redisclient.Locker,
	log logrus.FieldLogger,
) *AppointmentService {
	return &AppointmentService{
		repo:      repo,
		customers: customers,
		staff:     staff,
		services:  services,
		locker:    locker,
		log:       log.WithField("service", "appointment"),
	}
}

// Create books a new appointment. The conflict check and the insert run under
// a per staff-and-day booking lock so that two concurrent requests for the
// same slot cannot both pass the check.
func (s *AppointmentService) Create(ctx context.Context, in AppointmentCreate) (*Appointment, error) {
	if in.Date.IsZero() {
		return nil, invalid("appointment_date", "is required")
	}
	date := DateOnly(in.Date)
	if date.Before(Today()) {
		return nil, invalid("appointment_date", "cannot be in the past")
	}
	if in.Time < 0 || in.Time >= 24*time.Hour {
		return nil, invalid("appointment_time", "must be a time of day")
	}

	status := in.Status
	if status == "" {
		status = StatusScheduled
	}
	if !status.Valid() {
		return nil, invalid("status", "is not a valid appointment status")
	}

	notes, err := optionalText("notes", in.Notes, maxNotesLen)
	if err != nil {
		return nil, err
	}
	if in.Price != nil {
		if err := validPrice("price", *in.Price); err != nil {
			return nil, err
		}
	}

	if err := s.checkReferences(ctx, &in.CustomerID, &in.StaffID, &in.ServiceID); err != nil {
		return nil, err
	}

	var created *Appointment
	err = s.locker.WithBookingLock(ctx, in.StaffID, date, func(lockCtx context.Context) error {
		conflict, err := s.hasConflict(lockCtx, in.StaffID, date, in.Time, uuid.Nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrScheduleConflict
		}

		now := time.Now().UTC()
		appt := &Appointment{
			ID:         uuid.New(),
			CustomerID: in.CustomerID,
			StaffID:    in.StaffID,
			ServiceID:  in.ServiceID,
			Date:       date,
			Time:       in.Time,
			Status:     status,
			Notes:      notes,
			Price:      in.Price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Insert(lockCtx, appt); err != nil {
			return err
		}
		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"appointment_id": created.ID,
		"staff_id":       created.StaffID,
		"date":           created.Date.Format("2006-01-02"),
		"time":           FormatClock(created.Time),
	}).Info("appointment created")
	return created, nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. If any of staff, date or time changes, the
// effective slot triple is recomputed over the stored values and the conflict
// check reruns with the appointment's own id excluded, under the booking lock
// of the effective staff and day.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, in AppointmentUpdate) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, in.CustomerID, in.StaffID, in.ServiceID); err != nil {
		return nil, err
	}

	if in.Status != nil && !in.Status.Valid() {
		return nil, invalid("status", "is not a valid appointment status")
	}
	notes := appt.Notes
	if in.Notes != nil {
		notes, err = optionalText("notes", in.Notes, maxNotesLen)
		if err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		if err := validPrice("price", *in.Price); err != nil {
			return nil, err
		}
	}
	if in.Time != nil && (*in.Time < 0 || *in.Time >= 24*time.Hour) {
		return nil, invalid("appointment_time", "must be a time of day")
	}

	// Effective slot after merging the provided fields over the stored ones.
	staffID := appt.StaffID
	if in.StaffID != nil {
		staffID = *in.StaffID
	}
	date := appt.Date
	if in.Date != nil {
		date = DateOnly(*in.Date)
	}
	clock := appt.Time
	if in.Time != nil {
		clock = *in.Time
	}
	slotChanged := in.StaffID != nil || in.Date != nil || in.Time != nil

	apply := func() {
		if in.CustomerID != nil {
			appt.CustomerID = *in.CustomerID
		}
		if in.ServiceID != nil {
			appt.ServiceID = *in.ServiceID
		}
		appt.StaffID = staffID
		appt.Date = date
		appt.Time = clock
		if in.Status != nil {
			appt.Status = *in.Status
		}
		appt.Notes = notes
		if in.Price != nil {
			appt.Price = in.Price
		}
		appt.UpdatedAt = time.Now().UTC()
	}

	if !slotChanged {
		apply()
		if err := s.repo.Update(ctx, appt); err != nil {
			return nil, err
		}
		return appt, nil
	}

	err = s.locker.WithBookingLock(ctx, staffID, date, func(lockCtx context.Context) error {
		conflict, err := s.hasConflict(lockCtx, staffID, date, clock, appt.ID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrScheduleConflict
		}
		apply()
		return s.repo.Update(lockCtx, appt)
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}
	return appt, nil
}

// UpdateStatus sets the status without transition validation; any valid
// status may follow any other, so a front desk can correct mistakes freely.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status AppointmentStatus) (*Appointment, error) {
	if !status.Valid() {
		return nil, invalid("status", "is not a valid appointment status")
	}
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	appt.Status = status
	appt.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("appointment_id", id).Info("appointment deleted")
	return nil
}

func (s *AppointmentService) List(ctx context.Context, limit int) ([]Appointment, error) {
	return s.repo.List(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]Appointment, error) {
	if !s.customers.Exists(ctx, customerID) {
		return nil, ErrCustomerNotFound
	}
	return s.repo.ByCustomer(ctx, customerID, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByStaff(ctx context.Context, staffID uuid.UUID, limit int) ([]Appointment, error) {
	if !s.staff.Exists(ctx, staffID) {
		return nil, ErrStaffNotFound
	}
	return s.repo.ByStaff(ctx, staffID, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByService(ctx context.Context, serviceID uuid.UUID, limit int) ([]Appointment, error) {
	if !s.services.Exists(ctx, serviceID) {
		return nil, ErrServiceNotFound
	}
	return s.repo.ByService(ctx, serviceID, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByDate(ctx context.Context, date time.Time, limit int) ([]Appointment, error) {
	return s.repo.ByDate(ctx, DateOnly(date), clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByDateAndStaff(ctx context.Context, date time.Time, staffID uuid.UUID, limit int) ([]Appointment, error) {
	if !s.staff.Exists(ctx, staffID) {
		return nil, ErrStaffNotFound
	}
	return s.repo.ByDateAndStaff(ctx, DateOnly(date), staffID, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) ByStatus(ctx context.Context, status AppointmentStatus, limit int) ([]Appointment, error) {
	if !status.Valid() {
		return nil, invalid("status", "is not a valid appointment status")
	}
	return s.repo.ByStatus(ctx, status, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) Upcoming(ctx context.Context, limit int) ([]Appointment, error) {
	return s.repo.Upcoming(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *AppointmentService) Today(ctx context.Context, limit int) ([]Appointment, error) {
	return s.ByDate(ctx, Today(), limit)
}

func (s *AppointmentService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *AppointmentService) CountByStatus(ctx context.Context, status AppointmentStatus) (int, error) {
	if !status.Valid() {
		return 0, invalid("status", "is not a valid appointment status")
	}
	return s.repo.CountByStatus(ctx, status)
}

// checkReferences validates whichever entity references are present. A nil
// pointer means the reference is not part of the request.
func (s *AppointmentService) checkReferences(ctx context.Context, customerID, staffID, serviceID *uuid.UUID) error {
	if customerID != nil {
		if *customerID == uuid.Nil {
			return invalid("customer_id", "is required")
		}
		if !s.customers.Exists(ctx, *customerID) {
			return ErrCustomerNotFound
		}
	}
	if staffID != nil {
		if *staffID == uuid.Nil {
			return invalid("staff_id", "is required")
		}
		if !s.staff.Exists(ctx, *staffID) {
			return ErrStaffNotFound
		}
		if !s.staff.IsActive(ctx, *staffID) {
			return ErrStaffInactive
		}
	}
	if serviceID != nil {
		if *serviceID == uuid.Nil {
			return invalid("service_id", "is required")
		}
		if !s.services.Exists(ctx, *serviceID) {
			return ErrServiceNotFound
		}
		if !s.services.IsActive(ctx, *serviceID) {
			return ErrServiceInactive
		}
	}
	return nil
}

// hasConflict scans the staff member's appointments on the given date and
// reports whether any still-blocking one occupies the same time. excludeID
// skips the appointment being rescheduled so it cannot conflict with itself.
func (s *AppointmentService) hasConflict(ctx context.Context, staffID uuid.UUID, date time.Time, clock time.Duration, excludeID uuid.UUID) (bool, error) {
	candidates, err := s.repo.ByDateAndStaff(ctx, date, staffID, scanCap)
	if err != nil {
		return false, err
	}
	for _, candidate := range candidates {
		if excludeID != uuid.Nil && candidate.ID == excludeID {
			continue
		}
		if !candidate.Status.BlocksSlot() {
			continue
		}
		if candidate.Time == clock {
			return true, nil
		}
	}
	return false, nil
}
