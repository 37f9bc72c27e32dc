package salon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/inf.v0"
)

const appointmentColumns = "id, customer_id, staff_id, service_id, appointment_date, appointment_time, status, notes, price, created_at, updated_at"

// CassAppointmentRepository is the Cassandra-backed AppointmentRepository.
type CassAppointmentRepository struct {
	session *gocql.Session
	log     logrus.FieldLogger
}

func NewCassAppointmentRepository(session *gocql.Session, log logrus.FieldLogger) *CassAppointmentRepository {
	return &CassAppointmentRepository{session: session, log: log.WithField("repository", "appointment")}
}

func (r *CassAppointmentRepository) Insert(ctx context.Context, a *Appointment) error {
	err := r.session.Query(`
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(a.ID), gocql.UUID(a.CustomerID), gocql.UUID(a.StaffID), gocql.UUID(a.ServiceID),
		a.Date, a.Time, string(a.Status), a.Notes, priceToCQL(a.Price), a.CreatedAt, a.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("insert appointment failed")
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *CassAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE id = ?`, gocql.UUID(id),
	).WithContext(ctx)
	return r.scanOne(q, "get appointment")
}

func (r *CassAppointmentRepository) List(ctx context.Context, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments LIMIT ?`, normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments")
}

func (r *CassAppointmentRepository) ByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE customer_id = ? LIMIT ? ALLOW FILTERING`,
		gocql.UUID(customerID), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by customer")
}

func (r *CassAppointmentRepository) ByStaff(ctx context.Context, staffID uuid.UUID, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE staff_id = ? LIMIT ? ALLOW FILTERING`,
		gocql.UUID(staffID), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by staff")
}

func (r *CassAppointmentRepository) ByService(ctx context.Context, serviceID uuid.UUID, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE service_id = ? LIMIT ? ALLOW FILTERING`,
		gocql.UUID(serviceID), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by service")
}

func (r *CassAppointmentRepository) ByDate(ctx context.Context, date time.Time, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE appointment_date = ? LIMIT ? ALLOW FILTERING`,
		DateOnly(date), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by date")
}

func (r *CassAppointmentRepository) ByDateAndStaff(ctx context.Context, date time.Time, staffID uuid.UUID, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE staff_id = ? AND appointment_date = ? LIMIT ? ALLOW FILTERING`,
		gocql.UUID(staffID), DateOnly(date), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by date and staff")
}

func (r *CassAppointmentRepository) ByStatus(ctx context.Context, status AppointmentStatus, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments WHERE status = ? LIMIT ? ALLOW FILTERING`,
		string(status), normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list appointments by status")
}

// Upcoming returns appointments from today onward whose status is scheduled
// or confirmed, ordered by date then time. The store cannot filter on this
// compound predicate, so a bounded superset is scanned and filtered here.
func (r *CassAppointmentRepository) Upcoming(ctx context.Context, limit int) ([]Appointment, error) {
	q := r.session.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments LIMIT ?`, scanCap,
	).WithContext(ctx)
	all, err := r.scanMany(q, "list upcoming appointments")
	if err != nil {
		return nil, err
	}

	today := Today()
	upcoming := make([]Appointment, 0, len(all))
	for _, a := range all {
		if a.Date.Before(today) {
			continue
		}
		if a.Status != StatusScheduled && a.Status != StatusConfirmed {
			continue
		}
		upcoming = append(upcoming, a)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if !upcoming[i].Date.Equal(upcoming[j].Date) {
			return upcoming[i].Date.Before(upcoming[j].Date)
		}
		return upcoming[i].Time < upcoming[j].Time
	})

	limit = normLimit(limit)
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func (r *CassAppointmentRepository) Update(ctx context.Context, a *Appointment) error {
	err := r.session.Query(`
		UPDATE appointments
		SET customer_id = ?, staff_id = ?, service_id = ?, appointment_date = ?,
		    appointment_time = ?, status = ?, notes = ?, price = ?, updated_at = ?
		WHERE id = ?`,
		gocql.UUID(a.CustomerID), gocql.UUID(a.StaffID), gocql.UUID(a.ServiceID), a.Date,
		a.Time, string(a.Status), a.Notes, priceToCQL(a.Price), a.UpdatedAt, gocql.UUID(a.ID),
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("update appointment failed")
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *CassAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.session.Query(`DELETE FROM appointments WHERE id = ?`, gocql.UUID(id)).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("delete appointment failed")
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (r *CassAppointmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`SELECT COUNT(*) FROM appointments`).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count appointments failed")
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return count, nil
}

func (r *CassAppointmentRepository) CountByStatus(ctx context.Context, status AppointmentStatus) (int, error) {
	var count int
	err := r.session.Query(`
		SELECT COUNT(*) FROM appointments WHERE status = ? ALLOW FILTERING`, string(status),
	).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count appointments by status failed")
		return 0, fmt.Errorf("count appointments by status: %w", err)
	}
	return count, nil
}

func (r *CassAppointmentRepository) scanOne(q *gocql.Query, op string) (*Appointment, error) {
	var (
		id, customerID, staffID, serviceID gocql.UUID
		date                               time.Time
		clock                              time.Duration
		status                             string
		notes                              *string
		price                              *inf.Dec
		createdAt, updatedAt               time.Time
	)
	err := q.Scan(&id, &customerID, &staffID, &serviceID, &date, &clock, &status, &notes, &price, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Appointment{
		ID:         uuid.UUID(id),
		CustomerID: uuid.UUID(customerID),
		StaffID:    uuid.UUID(staffID),
		ServiceID:  uuid.UUID(serviceID),
		Date:       DateOnly(date),
		Time:       clock,
		Status:     AppointmentStatus(status),
		Notes:      notes,
		Price:      priceFromCQL(price),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func (r *CassAppointmentRepository) scanMany(q *gocql.Query, op string) ([]Appointment, error) {
	iter := q.Iter()

	var out []Appointment
	for {
		var (
			id, customerID, staffID, serviceID gocql.UUID
			date                               time.Time
			clock                              time.Duration
			status                             string
			notes                              *string
			price                              *inf.Dec
			createdAt, updatedAt               time.Time
		)
		if !iter.Scan(&id, &customerID, &staffID, &serviceID, &date, &clock, &status, &notes, &price, &createdAt, &updatedAt) {
			break
		}
		out = append(out, Appointment{
			ID:         uuid.UUID(id),
			CustomerID: uuid.UUID(customerID),
			StaffID:    uuid.UUID(staffID),
			ServiceID:  uuid.UUID(serviceID),
			Date:       DateOnly(date),
			Time:       clock,
			Status:     AppointmentStatus(status),
			Notes:      notes,
			Price:      priceFromCQL(price),
			CreatedAt:  createdAt,
			UpdatedAt:  updatedAt,
		})
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
