package salon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const staffColumns = "id, name, email, phone, role, specialties, is_active, hire_date, created_at, updated_at"

// CassStaffRepository is the Cassandra-backed StaffRepository.
type CassStaffRepository struct {
	session *gocql.Session
	log     logrus.FieldLogger
}

func NewCassStaffRepository(session *gocql.Session, log logrus.FieldLogger) *CassStaffRepository {
	return &CassStaffRepository{session: session, log: log.WithField("repository", "staff")}
}

func (r *CassStaffRepository) Insert(ctx context.Context, s *Staff) error {
	err := r.session.Query(`
		INSERT INTO staff (`+staffColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(s.ID), s.Name, s.Email, s.Phone, s.Role, s.Specialties,
		s.IsActive, s.HireDate, s.CreatedAt, s.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("insert staff failed")
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *CassStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff WHERE id = ?`, gocql.UUID(id),
	).WithContext(ctx)
	return r.scanOne(q, "get staff")
}

func (r *CassStaffRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff WHERE email = ? LIMIT 1`, email,
	).WithContext(ctx)
	return r.scanOne(q, "get staff by email")
}

func (r *CassStaffRepository) List(ctx context.Context, limit int) ([]Staff, error) {
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff LIMIT ?`, normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list staff")
}

func (r *CassStaffRepository) ListActive(ctx context.Context, limit int) ([]Staff, error) {
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff WHERE is_active = true LIMIT ? ALLOW FILTERING`, normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list active staff")
}

func (r *CassStaffRepository) ListByRole(ctx context.Context, role string, activeOnly bool, limit int) ([]Staff, error) {
	cql := `
		SELECT ` + staffColumns + `
		FROM staff WHERE role = ?`
	if activeOnly {
		cql += ` AND is_active = true`
	}
	cql += ` LIMIT ? ALLOW FILTERING`
	q := r.session.Query(cql, role, normLimit(limit)).WithContext(ctx)
	return r.scanMany(q, "list staff by role")
}

func (r *CassStaffRepository) ListBySpecialty(ctx context.Context, specialty string, limit int) ([]Staff, error) {
	// The specialties list carries no index; scan and filter in memory.
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff LIMIT ?`, scanCap,
	).WithContext(ctx)
	all, err := r.scanMany(q, "list staff by specialty")
	if err != nil {
		return nil, err
	}
	limit = normLimit(limit)
	matched := make([]Staff, 0, limit)
	for _, s := range all {
		for _, sp := range s.Specialties {
			if strings.EqualFold(sp, specialty) {
				matched = append(matched, s)
				break
			}
		}
		if len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

func (r *CassStaffRepository) SearchByName(ctx context.Context, term string, limit int) ([]Staff, error) {
	q := r.session.Query(`
		SELECT `+staffColumns+`
		FROM staff LIMIT ?`, scanCap,
	).WithContext(ctx)
	all, err := r.scanMany(q, "search staff")
	if err != nil {
		return nil, err
	}
	limit = normLimit(limit)
	matched := make([]Staff, 0, limit)
	for _, s := range all {
		if containsFold(s.Name, term) {
			matched = append(matched, s)
			if len(matched) >= limit {
				break
			}
		}
	}
	return matched, nil
}

func (r *CassStaffRepository) Roles(ctx context.Context) ([]string, error) {
	iter := r.session.Query(`SELECT role FROM staff LIMIT ?`, scanCap).WithContext(ctx).Iter()

	seen := make(map[string]struct{})
	var role string
	for iter.Scan(&role) {
		if role != "" {
			seen[role] = struct{}{}
		}
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Error("list staff roles failed")
		return nil, fmt.Errorf("list staff roles: %w", err)
	}

	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

func (r *CassStaffRepository) Update(ctx context.Context, s *Staff) error {
	err := r.session.Query(`
		UPDATE staff
		SET name = ?, email = ?, phone = ?, role = ?, specialties = ?,
		    is_active = ?, hire_date = ?, updated_at = ?
		WHERE id = ?`,
		s.Name, s.Email, s.Phone, s.Role, s.Specialties,
		s.IsActive, s.HireDate, s.UpdatedAt, gocql.UUID(s.ID),
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("update staff failed")
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

func (r *CassStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.session.Query(`DELETE FROM staff WHERE id = ?`, gocql.UUID(id)).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("delete staff failed")
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}

func (r *CassStaffRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`SELECT COUNT(*) FROM staff`).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count staff failed")
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return count, nil
}

func (r *CassStaffRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`
		SELECT COUNT(*) FROM staff WHERE is_active = true ALLOW FILTERING`,
	).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count active staff failed")
		return 0, fmt.Errorf("count active staff: %w", err)
	}
	return count, nil
}

func (r *CassStaffRepository) scanOne(q *gocql.Query, op string) (*Staff, error) {
	var (
		id                   gocql.UUID
		name, email, role    string
		phone                *string
		specialties          []string
		isActive             bool
		hireDate             *time.Time
		createdAt, updatedAt time.Time
	)
	err := q.Scan(&id, &name, &email, &phone, &role, &specialties, &isActive, &hireDate, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Staff{
		ID:          uuid.UUID(id),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Role:        role,
		Specialties: specialties,
		IsActive:    isActive,
		HireDate:    hireDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (r *CassStaffRepository) scanMany(q *gocql.Query, op string) ([]Staff, error) {
	iter := q.Iter()

	var out []Staff
	for {
		var (
			id                   gocql.UUID
			name, email, role    string
			phone                *string
			specialties          []string
			isActive             bool
			hireDate             *time.Time
			createdAt, updatedAt time.Time
		)
		if !iter.Scan(&id, &name, &email, &phone, &role, &specialties, &isActive, &hireDate, &createdAt, &updatedAt) {
			break
		}
		out = append(out, Staff{
			ID:          uuid.UUID(id),
			Name:        name,
			Email:       email,
			Phone:       phone,
			Role:        role,
			Specialties: specialties,
			IsActive:    isActive,
			HireDate:    hireDate,
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
		})
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
