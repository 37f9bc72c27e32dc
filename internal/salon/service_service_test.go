package salon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (*ServiceCatalogService, *fakeServiceRepo) {
	repo := newFakeServiceRepo()
	return NewServiceCatalogService(repo, testLogger()), repo
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceCreate{
		Name:     "Balayage",
		Duration: 90,
		Price:    price("120.50"),
		Category: "Hair",
	})
	require.NoError(t, err)

	assert.True(t, created.IsActive)
	assert.True(t, created.Price.Equal(price("120.50")), "price is kept exactly")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    ServiceCreate
		field string
	}{
		{"zero duration", ServiceCreate{Name: "X", Duration: 0, Price: price("10"), Category: "Hair"}, "duration"},
		{"negative duration", ServiceCreate{Name: "X", Duration: -15, Price: price("10"), Category: "Hair"}, "duration"},
		{"zero price", ServiceCreate{Name: "X", Duration: 30, Price: price("0"), Category: "Hair"}, "price"},
		{"negative price", ServiceCreate{Name: "X", Duration: 30, Price: price("-5"), Category: "Hair"}, "price"},
		{"blank category", ServiceCreate{Name: "X", Duration: 30, Price: price("10"), Category: " "}, "category"},
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

func TestServiceUpdatePartialMerge(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceCreate{
		Name:     "Balayage",
		Duration: 90,
		Price:    price("120.50"),
		Category: "Hair",
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	newPrice := price("135.00")
	updated, err := svc.Update(ctx, created.ID, ServiceUpdate{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Duration, updated.Duration)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestServiceListByCategoryAndCategories(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, ServiceCreate{Name: "Cut", Duration: 30, Price: price("40"), Category: "Hair"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, ServiceCreate{Name: "Perm", Duration: 120, Price: price("150"), Category: "hair", IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ServiceCreate{Name: "Manicure", Duration: 45, Price: price("35"), Category: "Nails"})
	require.NoError(t, err)

	all, err := svc.ListByCategory(ctx, "Hair", false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2, "category match is case-insensitive")

	activeOnly, err := svc.ListByCategory(ctx, "Hair", true, 0)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 1)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	countActive, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, countActive)
}

func TestServiceSearchByName(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, ServiceCreate{Name: "Deep Tissue Massage", Duration: 60, Price: price("90"), Category: "Massage"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ServiceCreate{Name: "Hot Stone Massage", Duration: 75, Price: price("110"), Category: "Massage"})
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "massage", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.SearchByName(ctx, "", 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceCreate{Name: "Cut", Duration: 30, Price: price("40"), Category: "Hair"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrServiceNotFound)
}
