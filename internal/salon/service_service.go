package salon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ServiceCatalogService enforces salon-service business rules on top of the
// repository.
type ServiceCatalogService struct {
	repo ServiceRepository
	log  logrus.FieldLogger
}

func NewServiceCatalogService(repo ServiceRepository, log logrus.FieldLogger) *ServiceCatalogService {
	return &ServiceCatalogService{repo: repo, log: log.WithField("service", "catalog")}
}

func (s *ServiceCatalogService) Create(ctx context.Context, in ServiceCreate) (*Service, error) {
	name, err := requireText("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	description, err := optionalText("description", in.Description, maxDescriptionLen)
	if err != nil {
		return nil, err
	}
	if in.Duration <= 0 {
		return nil, invalid("duration", "must be greater than zero")
	}
	if err := validPrice("price", in.Price); err != nil {
		return nil, err
	}
	category, err := requireText("category", in.Category, maxCategoryLen)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	svc := &Service{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Duration:    in.Duration,
		Price:       in.Price,
		Category:    category,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, svc); err != nil {
		return nil, err
	}
	s.log.WithField("service_id", svc.ID).Info("service created")
	return svc, nil
}

func (s *ServiceCatalogService) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceCatalogService) List(ctx context.Context, limit int) ([]Service, error) {
	return s.repo.List(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *ServiceCatalogService) ListActive(ctx context.Context, limit int) ([]Service, error) {
	return s.repo.ListActive(ctx, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *ServiceCatalogService) ListByCategory(ctx context.Context, category string, activeOnly bool, limit int) ([]Service, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, invalid("category", "cannot be empty")
	}
	return s.repo.ListByCategory(ctx, category, activeOnly, clampLimit(limit, defaultListLimit, maxListLimit))
}

func (s *ServiceCatalogService) SearchByName(ctx context.Context, term string, limit int) ([]Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("name", "search term cannot be empty")
	}
	return s.repo.SearchByName(ctx, term, clampLimit(limit, defaultSearchLimit, maxSearchLimit))
}

func (s *ServiceCatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *ServiceCatalogService) Update(ctx context.Context, id uuid.UUID, in ServiceUpdate) (*Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requireText("name", *in.Name, maxNameLen)
		if err != nil {
			return nil, err
		}
		svc.Name = name
	}
	if in.Description != nil {
		description, err := optionalText("description", in.Description, maxDescriptionLen)
		if err != nil {
			return nil, err
		}
		svc.Description = description
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return nil, invalid("duration", "must be greater than zero")
		}
		svc.Duration = *in.Duration
	}
	if in.Price != nil {
		if err := validPrice("price", *in.Price); err != nil {
			return nil, err
		}
		svc.Price = *in.Price
	}
	if in.Category != nil {
		category, err := requireText("category", *in.Category, maxCategoryLen)
		if err != nil {
			return nil, err
		}
		svc.Category = category
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	svc.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *ServiceCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("service_id", id).Info("service deleted")
	return nil
}

func (s *ServiceCatalogService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceCatalogService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

// Exists and IsActive are gating checks used by the appointment service.
// Store failures are swallowed and reported as absence.
func (s *ServiceCatalogService) Exists(ctx context.Context, id uuid.UUID) bool {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrServiceNotFound) {
			s.log.WithError(err).WithField("service_id", id).Warn("service existence check failed")
		}
		return false
	}
	return true
}

func (s *ServiceCatalogService) IsActive(ctx context.Context, id uuid.UUID) bool {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrServiceNotFound) {
			s.log.WithError(err).WithField("service_id", id).Warn("service active check failed")
		}
		return false
	}
	return svc.IsActive
}
