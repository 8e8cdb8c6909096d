package service

import (
	"context"
	"fmt"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// LocationService implements business logic for Location operations.
type LocationService struct {
	store repo.Store
}

// NewLocationService constructs a LocationService backed by store.
func NewLocationService(store repo.Store) *LocationService {
	return &LocationService{store: store}
}

func (s *LocationService) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error) {
	page, err := s.store.Repos().Locations.List(ctx, p)
	if err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("service.LocationService.List: %w", err)
	}
	return page, nil
}

func (s *LocationService) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	l, err := s.store.Repos().Locations.GetByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.GetByID: %w", err)
	}
	return l, nil
}

// Create validates raw in create mode and inserts the location.
func (s *LocationService) Create(ctx context.Context, raw map[string]any) (domain.Location, error) {
	tr := patch.New(raw, patch.Create, patch.LocationRules...)
	if err := tr.Err(); err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	l, err := s.store.Repos().Locations.Create(ctx, patch.LocationFromPatch(domain.Location{}, tr.Patch()))
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	return l, nil
}

// Update writes the provided fields that differ from the stored row.
// Re-sending current values is a successful no-op.
func (s *LocationService) Update(ctx context.Context, id int64, raw map[string]any) error {
	tr := patch.New(raw, patch.Update, patch.LocationRules...)
	if err := tr.Err(); err != nil {
		return fmt.Errorf("service.LocationService.Update: %w", err)
	}

	r := s.store.Repos()
	current, err := r.Locations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.LocationService.Update: %w", err)
	}
	diff := tr.Diff(patch.LocationFields(current))
	if len(diff) == 0 {
		return nil
	}
	if err := r.Locations.Update(ctx, id, diff); err != nil {
		return fmt.Errorf("service.LocationService.Update: %w", err)
	}
	return nil
}

// Delete removes a location no facility references. The reference check
// and the delete share a transaction.
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		if _, err := tx.Locations.GetByID(ctx, id); err != nil {
			return err
		}
		used, err := tx.Locations.InUse(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrBlocked
		}
		return tx.Locations.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.LocationService.Delete: %w", err)
	}
	return nil
}
