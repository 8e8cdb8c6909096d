package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/service"
)

func validEmployee() map[string]any {
	return map[string]any{
		"name":     "Anna de Vries",
		"email":    "Anna@Example.com",
		"phone":    "+31612345678",
		"position": "Chef",
	}
}

func newEmployeeFixture(t *testing.T) (*service.EmployeeService, *memStore, int64) {
	t.Helper()
	store := newMemStore()
	id, err := service.NewFacilityService(store, nil).Create(context.Background(), validFacility())
	require.NoError(t, err)
	return service.NewEmployeeService(store), store, id
}

func TestEmployeeService_Create(t *testing.T) {
	svc, _, facilityID := newEmployeeFixture(t)

	got, err := svc.Create(context.Background(), facilityID, validEmployee())

	require.NoError(t, err)
	assert.Equal(t, facilityID, got.FacilityID)
	assert.Equal(t, "anna@example.com", got.Email)
}

func TestEmployeeService_Create_UnknownFacility(t *testing.T) {
	svc, _, _ := newEmployeeFixture(t)

	_, err := svc.Create(context.Background(), 404, validEmployee())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeService_Create_FacilityDeletedBeforeTransaction(t *testing.T) {
	_, store, facilityID := newEmployeeFixture(t)
	racing := &racingStore{memStore: store, before: func(d *memDB) { delete(d.facilities, facilityID) }}

	_, err := service.NewEmployeeService(racing).Create(context.Background(), facilityID, validEmployee())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.db.employees, "no employee for a deleted facility")
	assert.Equal(t, 1, store.rollbacks)
}

func TestEmployeeService_Create_Invalid(t *testing.T) {
	svc, _, facilityID := newEmployeeFixture(t)

	_, err := svc.Create(context.Background(), facilityID, map[string]any{"email": "nope"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":     domain.CodeRequired,
		"email":    domain.CodeInvalidEmail,
		"phone":    domain.CodeInvalidPhone,
		"position": domain.CodeRequired,
	}, ve.Fields)
}

func TestEmployeeService_Update(t *testing.T) {
	svc, _, facilityID := newEmployeeFixture(t)
	ctx := context.Background()
	e, err := svc.Create(ctx, facilityID, validEmployee())
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, e.ID, map[string]any{"position": "Sous-chef"}))

	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sous-chef", got.Position)
	assert.Equal(t, "Anna de Vries", got.Name)

	err = svc.Update(ctx, e.ID, map[string]any{"facility_id": 3})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{"payload": domain.CodeAtLeastOneFieldRequired}, ve.Fields)
}

func TestEmployeeService_ListByFacility(t *testing.T) {
	svc, _, facilityID := newEmployeeFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, facilityID, validEmployee())
		require.NoError(t, err)
	}

	page, err := svc.ListByFacility(ctx, facilityID, domain.PageParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.NotNil(t, page.NextCursor)

	_, err = svc.ListByFacility(ctx, 404, domain.PageParams{Limit: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeService_Delete(t *testing.T) {
	svc, _, facilityID := newEmployeeFixture(t)
	ctx := context.Background()
	e, err := svc.Create(ctx, facilityID, validEmployee())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	assert.ErrorIs(t, svc.Delete(ctx, e.ID), domain.ErrNotFound)
}
