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

// CustomerService enforces customer business rules on top of the repository.
type CustomerService struct {
	repo CustomerRepository
	log  logrus.FieldLogger
}

func NewCustomerService(repo CustomerRepository, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{repo: repo, log: log.WithField("service", "customer")}
}

func (s *CustomerService) Create(ctx context.Context, in CustomerCreate) (*Customer, error) {
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
	address, err := optionalText("address", in.Address, maxAddressLen)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	s.log.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email", "cannot be empty")
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *CustomerService) List(ctx context.Context, limit int) ([]Customer, error) {
	return s.repo.List(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerUpdate) (*Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requireText("name", *in.Name, maxNameLen)
		if err != nil {
			return nil, err
		}
		customer.Name = name
	}
	if in.Email != nil {
		email, err := validEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != customer.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
		}
		customer.Email = email
	}
	if in.Phone != nil {
		phone, err := validPhone(in.Phone)
		if err != nil {
			return nil, err
		}
		customer.Phone = phone
	}
	if in.Address != nil {
		address, err := optionalText("address", in.Address, maxAddressLen)
		if err != nil {
			return nil, err
		}
		customer.Address = address
	}

	customer.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	// Existing appointments keep their customer_id; no referential check.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("customer_id", id).Info("customer deleted")
	return nil
}

func (s *CustomerService) SearchByName(ctx context.Context, term string, limit int) ([]Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("name", "search term cannot be empty")
	}
	return s.repo.SearchByName(ctx, term, clampLimit(limit, defaultSearchLimit, maxSearchLimit))
}

func (s *CustomerService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Exists is a gating check used by the appointment service. Store failures
// are swallowed and reported as absence; that can mask an outage as a 404
// but keeps the caller simple.
func (s *CustomerService) Exists(ctx context.Context, id uuid.UUID) bool {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrCustomerNotFound) {
			s.log.WithError(err).WithField("customer_id", id).Warn("customer existence check failed")
		}
		return false
	}
	return true
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return nil
		}
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}
