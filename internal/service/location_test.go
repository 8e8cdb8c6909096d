package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/service"
)

func validLocation() map[string]any {
	return map[string]any{
		"city":         "Utrecht",
		"address":      "Oudegracht 1",
		"zip_code":     "3511AA",
		"country_code": "nl",
		"phone_number": "+31 30 123 4567",
	}
}

func TestLocationService_Create(t *testing.T) {
	svc := service.NewLocationService(newMemStore())

	got, err := svc.Create(context.Background(), validLocation())

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "NL", got.CountryCode)
	assert.Equal(t, "+31301234567", got.PhoneNumber)
}

func TestLocationService_Create_Invalid(t *testing.T) {
	svc := service.NewLocationService(newMemStore())
	raw := validLocation()
	delete(raw, "city")
	raw["phone_number"] = "abc"

	_, err := svc.Create(context.Background(), raw)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"city":         domain.CodeRequired,
		"phone_number": domain.CodeInvalidPhone,
	}, ve.Fields)
}

func TestLocationService_Update(t *testing.T) {
	store := newMemStore()
	svc := service.NewLocationService(store)
	ctx := context.Background()
	l, err := svc.Create(ctx, validLocation())
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		require.NoError(t, svc.Update(ctx, l.ID, map[string]any{"city": "Delft"}))
		got, err := svc.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Delft", got.City)
		assert.Equal(t, "Oudegracht 1", got.Address)
	})

	t.Run("unchanged is a no-op", func(t *testing.T) {
		store.db.fail["Locations.Update"] = errBoom
		defer delete(store.db.fail, "Locations.Update")
		assert.NoError(t, svc.Update(ctx, l.ID, map[string]any{"city": "Delft"}))
	})

	t.Run("empty payload", func(t *testing.T) {
		err := svc.Update(ctx, l.ID, map[string]any{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("explicit empty value", func(t *testing.T) {
		var ve *domain.ValidationError
		require.ErrorAs(t, svc.Update(ctx, l.ID, map[string]any{"address": ""}), &ve)
		assert.Equal(t, map[string]string{"address": domain.CodeCannotBeEmpty}, ve.Fields)
	})

	t.Run("not found", func(t *testing.T) {
		err := svc.Update(ctx, 404, map[string]any{"city": "X"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLocationService_Delete_BlockedWhileReferenced(t *testing.T) {
	store := newMemStore()
	facilities := service.NewFacilityService(store, nil)
	svc := service.NewLocationService(store)
	ctx := context.Background()

	id, err := facilities.Create(ctx, validFacility())
	require.NoError(t, err)
	f, err := facilities.GetByID(ctx, id)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, f.LocationID), domain.ErrBlocked)

	require.NoError(t, facilities.Delete(ctx, id))
	assert.NoError(t, svc.Delete(ctx, f.LocationID))
	assert.ErrorIs(t, svc.Delete(ctx, f.LocationID), domain.ErrNotFound)
}

func TestLocationService_List(t *testing.T) {
	svc := service.NewLocationService(newMemStore())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, validLocation())
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, domain.NewPageParams(nil, nil))

	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Nil(t, page.NextCursor)
}
