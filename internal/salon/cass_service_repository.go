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

const serviceColumns = "id, name, description, duration, price, category, is_active, created_at, updated_at"

// CassServiceRepository is the Cassandra-backed ServiceRepository.
type CassServiceRepository struct {
	session *gocql.Session
	log     logrus.FieldLogger
}

func NewCassServiceRepository(session *gocql.Session, log logrus.FieldLogger) *CassServiceRepository {
	return &CassServiceRepository{session: session, log: log.WithField("repository", "service")}
}

func (r *CassServiceRepository) Insert(ctx context.Context, s *Service) error {
	err := r.session.Query(`
		INSERT INTO services (`+serviceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(s.ID), s.Name, s.Description, s.Duration, decToInf(s.Price),
		s.Category, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("insert service failed")
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *CassServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	q := r.session.Query(`
		SELECT `+serviceColumns+`
		FROM services WHERE id = ?`, gocql.UUID(id),
	).WithContext(ctx)
	return r.scanOne(q, "get service")
}

func (r *CassServiceRepository) List(ctx context.Context, limit int) ([]Service, error) {
	q := r.session.Query(`
		SELECT `+serviceColumns+`
		FROM services LIMIT ?`, normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list services")
}

func (r *CassServiceRepository) ListActive(ctx context.Context, limit int) ([]Service, error) {
	q := r.session.Query(`
		SELECT `+serviceColumns+`
		FROM services WHERE is_active = true LIMIT ? ALLOW FILTERING`, normLimit(limit),
	).WithContext(ctx)
	return r.scanMany(q, "list active services")
}

func (r *CassServiceRepository) ListByCategory(ctx context.Context, category string, activeOnly bool, limit int) ([]Service, error) {
	cql := `
		SELECT ` + serviceColumns + `
		FROM services WHERE category = ?`
	if activeOnly {
		cql += ` AND is_active = true`
	}
	cql += ` LIMIT ? ALLOW FILTERING`
	q := r.session.Query(cql, category, normLimit(limit)).WithContext(ctx)
	return r.scanMany(q, "list services by category")
}

func (r *CassServiceRepository) SearchByName(ctx context.Context, term string, limit int) ([]Service, error) {
	q := r.session.Query(`
		SELECT `+serviceColumns+`
		FROM services LIMIT ?`, scanCap,
	).WithContext(ctx)
	all, err := r.scanMany(q, "search services")
	if err != nil {
		return nil, err
	}
	limit = normLimit(limit)
	matched := make([]Service, 0, limit)
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

func (r *CassServiceRepository) Categories(ctx context.Context) ([]string, error) {
	iter := r.session.Query(`SELECT category FROM services LIMIT ?`, scanCap).WithContext(ctx).Iter()

	seen := make(map[string]struct{})
	var category string
	for iter.Scan(&category) {
		if category != "" {
			seen[category] = struct{}{}
		}
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Error("list service categories failed")
		return nil, fmt.Errorf("list service categories: %w", err)
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *CassServiceRepository) Update(ctx context.Context, s *Service) error {
	err := r.session.Query(`
		UPDATE services
		SET name = ?, description = ?, duration = ?, price = ?, category = ?,
		    is_active = ?, updated_at = ?
		WHERE id = ?`,
		s.Name, s.Description, s.Duration, decToInf(s.Price), s.Category,
		s.IsActive, s.UpdatedAt, gocql.UUID(s.ID),
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("update service failed")
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func (r *CassServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.session.Query(`DELETE FROM services WHERE id = ?`, gocql.UUID(id)).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("delete service failed")
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func (r *CassServiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`SELECT COUNT(*) FROM services`).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count services failed")
		return 0, fmt.Errorf("count services: %w", err)
	}
	return count, nil
}

func (r *CassServiceRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`
		SELECT COUNT(*) FROM services WHERE is_active = true ALLOW FILTERING`,
	).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count active services failed")
		return 0, fmt.Errorf("count active services: %w", err)
	}
	return count, nil
}

func (r *CassServiceRepository) scanOne(q *gocql.Query, op string) (*Service, error) {
	var (
		id                   gocql.UUID
		name, category       string
		description          *string
		duration             int
		price                *inf.Dec
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := q.Scan(&id, &name, &description, &duration, &price, &category, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	svc := &Service{
		ID:          uuid.UUID(id),
		Name:        name,
		Description: description,
		Duration:    duration,
		Category:    category,
		IsActive:    isActive,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if price != nil {
		svc.Price = infToDec(price)
	}
	return svc, nil
}

func (r *CassServiceRepository) scanMany(q *gocql.Query, op string) ([]Service, error) {
	iter := q.Iter()

	var out []Service
	for {
		var (
			id                   gocql.UUID
			name, category       string
			description          *string
			duration             int
			price                *inf.Dec
			isActive             bool
			createdAt, updatedAt time.Time
		)
		if !iter.Scan(&id, &name, &description, &duration, &price, &category, &isActive, &createdAt, &updatedAt) {
			break
		}
		svc := Service{
			ID:          uuid.UUID(id),
			Name:        name,
			Description: description,
			Duration:    duration,
			Category:    category,
			IsActive:    isActive,
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
		}
		if price != nil {
			svc.Price = infToDec(price)
		}
		out = append(out, svc)
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
