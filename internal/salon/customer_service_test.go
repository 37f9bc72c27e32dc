package salon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerService() (*CustomerService, *fakeCustomerRepo) {
	repo := newFakeCustomerRepo()
	return NewCustomerService(repo, testLogger()), repo
}

func TestCustomerCreate(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	customer, err := svc.Create(ctx, CustomerCreate{
		Name:  "  Maya Lopez  ",
		Email: "maya@example.com",
		Phone: strPtr("5551234567"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Maya Lopez", customer.Name, "name should be trimmed")
	assert.Equal(t, "maya@example.com", customer.Email)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "5551234567", *customer.Phone)
	assert.Nil(t, customer.Address)
	assert.Equal(t, customer.CreatedAt, customer.UpdatedAt)
	assert.False(t, customer.CreatedAt.IsZero())
}

func TestCustomerCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 20; i++ {
		customer, err := svc.Create(ctx, CustomerCreate{
			Name:  "Customer",
			Email: uuid.NewString() + "@example.com",
		})
		require.NoError(t, err)
		assert.False(t, seen[customer.ID])
		seen[customer.ID] = true
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    CustomerCreate
		field string
	}{
		{"empty name", CustomerCreate{Name: "   ", Email: "a@b.com"}, "name"},
		{"empty email", CustomerCreate{Name: "A", Email: ""}, "email"},
		{"malformed email", CustomerCreate{Name: "A", Email: "not-an-email"}, "email"},
		{"short phone", CustomerCreate{Name: "A", Email: "a@b.com", Phone: strPtr("12345")}, "phone"},
		{"alpha phone", CustomerCreate{Name: "A", Email: "a@b.com", Phone: strPtr("555123456x")}, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCustomerCreateDuplicateEmail(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CustomerCreate{Name: "First", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CustomerCreate{Name: "Second", Email: "dup@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCustomerGetByID(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CustomerCreate{Name: "Maya", Email: "maya@example.com"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerUpdatePartialMerge(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CustomerCreate{
		Name:    "Maya",
		Email:   "maya@example.com",
		Phone:   strPtr("5551234567"),
		Address: strPtr("1 Main St"),
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	updated, err := svc.Update(ctx, created.ID, CustomerUpdate{
		Name: strPtr("Maya L."),
	})
	require.NoError(t, err)

	assert.Equal(t, "Maya L.", updated.Name)
	assert.Equal(t, created.Email, updated.Email, "omitted fields keep their values")
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestCustomerUpdateEmailUniqueness(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	first, err := svc.Create(ctx, CustomerCreate{Name: "First", Email: "first@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CustomerCreate{Name: "Second", Email: "second@example.com"})
	require.NoError(t, err)

	// Taking another customer's email is a conflict.
	_, err = svc.Update(ctx, first.ID, CustomerUpdate{Email: strPtr("second@example.com")})
	assert.ErrorIs(t, err, ErrEmailExists)

	// Resubmitting your own email is not.
	updated, err := svc.Update(ctx, first.ID, CustomerUpdate{Email: strPtr("first@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "first@example.com", updated.Email)
}

func TestCustomerUpdateNotFound(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.Update(context.Background(), uuid.New(), CustomerUpdate{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerDelete(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CustomerCreate{Name: "Maya", Email: "maya@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	// Deleting again reports not found rather than succeeding silently.
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrCustomerNotFound)
}

func TestCustomerSearchByName(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	for _, name := range []string{"Maya Lopez", "Mia Chen", "Robert Maya"} {
		_, err := svc.Create(ctx, CustomerCreate{Name: name, Email: uuid.NewString() + "@example.com"})
		require.NoError(t, err)
	}

	found, err := svc.SearchByName(ctx, "maya", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.SearchByName(ctx, "   ", 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCustomerCountAndExists(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	created, err := svc.Create(ctx, CustomerCreate{Name: "Maya", Email: "maya@example.com"})
	require.NoError(t, err)

	count, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.True(t, svc.Exists(ctx, created.ID))
	assert.False(t, svc.Exists(ctx, uuid.New()))
}
