package salon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const customerColumns = "id, name, email, phone, address, created_at, updated_at"

// CassCustomerRepository is the Cassandra-backed CustomerRepository.
type CassCustomerRepository struct {
	session *gocql.Session
	log     logrus.FieldLogger
}

func NewCassCustomerRepository(session *gocql.Session, log logrus.FieldLogger) *CassCustomerRepository {
	return &CassCustomerRepository{session: session, log: log.WithField("repository", "customer")}
}

func (r *CassCustomerRepository) Insert(ctx context.Context, c *Customer) error {
	err := r.session.Query(`
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(c.ID), c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("insert customer failed")
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CassCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	q := r.session.Query(`
		SELECT `+customerColumns+`
		FROM customers WHERE id = ?`, gocql.UUID(id),
	).WithContext(ctx)
	return r.scanOne(q, "get customer")
}

func (r *CassCustomerRepository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	q := r.session.Query(`
		SELECT `+customerColumns+`
		FROM customers WHERE email = ? LIMIT 1`, email,
	).WithContext(ctx)
	return r.scanOne(q, "get customer by email")
}

func (r *CassCustomerRepository) List(ctx context.Context, limit int) ([]Customer, error) {
	return r.scanMany(ctx, "list customers", normLimit(limit))
}

func (r *CassCustomerRepository) SearchByName(ctx context.Context, term string, limit int) ([]Customer, error) {
	// No native substring predicate in the store. Scan up to scanCap rows
	// and filter in memory.
	all, err := r.scanMany(ctx, "search customers", scanCap)
	if err != nil {
		return nil, err
	}
	limit = normLimit(limit)
	matched := make([]Customer, 0, limit)
	for _, c := range all {
		if containsFold(c.Name, term) {
			matched = append(matched, c)
			if len(matched) >= limit {
				break
			}
		}
	}
	return matched, nil
}

func (r *CassCustomerRepository) Update(ctx context.Context, c *Customer) error {
	err := r.session.Query(`
		UPDATE customers
		SET name = ?, email = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt, gocql.UUID(c.ID),
	).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("update customer failed")
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CassCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.session.Query(`DELETE FROM customers WHERE id = ?`, gocql.UUID(id)).WithContext(ctx).Exec()
	if err != nil {
		r.log.WithError(err).Error("delete customer failed")
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CassCustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.session.Query(`SELECT COUNT(*) FROM customers`).WithContext(ctx).Scan(&count)
	if err != nil {
		r.log.WithError(err).Error("count customers failed")
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

func (r *CassCustomerRepository) scanOne(q *gocql.Query, op string) (*Customer, error) {
	var (
		id                   gocql.UUID
		name, email          string
		phone, address       *string
		createdAt, updatedAt time.Time
	)
	err := q.Scan(&id, &name, &email, &phone, &address, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Customer{
		ID:        uuid.UUID(id),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (r *CassCustomerRepository) scanMany(ctx context.Context, op string, limit int) ([]Customer, error) {
	iter := r.session.Query(`
		SELECT `+customerColumns+`
		FROM customers LIMIT ?`, limit,
	).WithContext(ctx).Iter()

	var out []Customer
	for {
		var (
			id                   gocql.UUID
			name, email          string
			phone, address       *string
			createdAt, updatedAt time.Time
		)
		if !iter.Scan(&id, &name, &email, &phone, &address, &createdAt, &updatedAt) {
			break
		}
		out = append(out, Customer{
			ID:        uuid.UUID(id),
			Name:      name,
			Email:     email,
			Phone:     phone,
			Address:   address,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	if err := iter.Close(); err != nil {
		r.log.WithError(err).Errorf("%s failed", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
