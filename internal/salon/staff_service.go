package salon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StaffService enforces staff business rules on top of the repository.
type StaffService struct {
	repo StaffRepository
	log  logrus.FieldLogger
}

func NewStaffService(repo StaffRepository, log logrus.FieldLogger) *StaffService {
	return &StaffService{repo: repo, log: log.WithField("service", "staff")}
}

func (s *StaffService) Create(ctx context.Context, in StaffCreate) (*Staff, error) {
	name, err := requireText("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	email, err := validEmail(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := validPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	role, err := requireText("role", in.Role, maxRoleLen)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	hireDate := in.HireDate
	if hireDate == nil {
		h := now
		hireDate = &h
	}

	staff := &Staff{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Role:        role,
		Specialties: normalizeSpecialties(in.Specialties),
		IsActive:    active,
		HireDate:    hireDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, staff); err != nil {
		return nil, err
	}
	s.log.WithField("staff_id", staff.ID).Info("staff member created")
	return staff, nil
}

func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StaffService) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email", "cannot be empty")
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *StaffService) List(ctx context.Context, limit int) ([]Staff, error) {
	return s.repo.List(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *StaffService) ListActive(ctx context.Context, limit int) ([]Staff, error) {
	return s.repo.ListActive(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *StaffService) ListByRole(ctx context.Context, role string, activeOnly bool, limit int) ([]Staff, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, invalid("role", "cannot be empty")
	}
	return s.repo.ListByRole(ctx, role, activeOnly, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *StaffService) ListBySpecialty(ctx context.Context, specialty string, limit int) ([]Staff, error) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, invalid("specialty", "cannot be empty")
	}
	return s.repo.ListBySpecialty(ctx, specialty, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *StaffService) SearchByName(ctx context.Context, term string, limit int) ([]Staff, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("name", "search term cannot be empty")
	}
	return s.repo.SearchByName(ctx, term, clampLimit(limit, defaultSearchLimit, maxSearchLimit))
}

func (s *StaffService) Roles(ctx context.Context) ([]string, error) {
	return s.repo.Roles(ctx)
}

func (s *StaffService) Update(ctx context.Context, id uuid.UUID, in StaffUpdate) (*Staff, error) {
	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requireText("name", *in.Name, maxNameLen)
		if err != nil {
			return nil, err
		}
		staff.Name = name
	}
	if in.Email != nil {
		email, err := validEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != staff.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		staff.Email = email
	}
	if in.Phone != nil {
		phone, err := validPhone(in.Phone)
		if err != nil {
			return nil, err
		}
		staff.Phone = phone
	}
	if in.Role != nil {
		role, err := requireText("role", *in.Role, maxRoleLen)
		if err != nil {
			return nil, err
		}
		staff.Role = role
	}
	if in.Specialties != nil {
		staff.Specialties = normalizeSpecialties(in.Specialties)
	}
	if in.IsActive != nil {
		staff.IsActive = *in.IsActive
	}
	if in.HireDate != nil {
		staff.HireDate = in.HireDate
	}

	staff.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("staff_id", id).Info("staff member deleted")
	return nil
}

func (s *StaffService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *StaffService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

// Exists and IsActive are gating checks used by the appointment service.
// Store failures are swallowed and reported as absence.
func (s *StaffService) Exists(ctx context.Context, id uuid.UUID) bool {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrStaffNotFound) {
			s.log.WithError(err).WithField("staff_id", id).Warn("staff existence check failed")
		}
		return false
	}
	return true
}

func (s *StaffService) IsActive(ctx context.Context, id uuid.UUID) bool {
	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrStaffNotFound) {
			s.log.WithError(err).WithField("staff_id", id).Warn("staff active check failed")
		}
		return false
	}
	return staff.IsActive
}

func (s *StaffService) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return nil
		}
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}
