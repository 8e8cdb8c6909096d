package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/metrics"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// FacilityService reads facilities and coordinates their multi-table
// writes. Every write runs in a single transaction: location, facility
// row, then tags, with a rollback on any failure.
type FacilityService struct {
	store repo.Store
	log   *slog.Logger
}

// NewFacilityService constructs a FacilityService. A nil logger falls back
// to slog.Default().
func NewFacilityService(store repo.Store, log *slog.Logger) *FacilityService {
	if log == nil {
		log = slog.Default()
	}
	return &FacilityService{store: store, log: log}
}

// List returns one page of facilities with location, tags and employees.
func (s *FacilityService) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error) {
	r := s.store.Repos()
	page, err := r.Facilities.List(ctx, p)
	if err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("service.FacilityService.List: %w", err)
	}
	if err := hydrate(ctx, r, page.Items); err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("service.FacilityService.List: %w", err)
	}
	return page, nil
}

// Search is List narrowed by f. Filter values are sanitized like any other
// text input; a tag filter never trims the tags shown on a match.
func (s *FacilityService) Search(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error) {
	f = domain.FacilityFilter{Name: patch.Text(f.Name), City: patch.Text(f.City), Tag: patch.Text(f.Tag)}

	r := s.store.Repos()
	page, err := r.Facilities.Search(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("service.FacilityService.Search: %w", err)
	}
	if err := hydrate(ctx, r, page.Items); err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("service.FacilityService.Search: %w", err)
	}
	return page, nil
}

// GetByID returns a single facility with location, tags and employees.
func (s *FacilityService) GetByID(ctx context.Context, id int64) (domain.Facility, error) {
	r := s.store.Repos()
	f, err := r.Facilities.GetByID(ctx, id)
	if err != nil {
		return domain.Facility{}, fmt.Errorf("service.FacilityService.GetByID: %w", err)
	}
	items := []domain.Facility{f}
	if err := hydrate(ctx, r, items); err != nil {
		return domain.Facility{}, fmt.Errorf("service.FacilityService.GetByID: %w", err)
	}
	return items[0], nil
}

// hydrate fills Tags and Employees on each facility in place, with two
// queries for the whole slice.
func hydrate(ctx context.Context, r repo.Repos, items []domain.Facility) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i, f := range items {
		ids[i] = f.ID
	}
	tags, err := r.Tags.NamesByFacilities(ctx, ids)
	if err != nil {
		return err
	}
	employees, err := r.Employees.ListByFacilities(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Tags = tags[items[i].ID]
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
		items[i].Employees = employees[items[i].ID]
		if items[i].Employees == nil {
			items[i].Employees = []domain.Employee{}
		}
	}
	return nil
}

// Create validates raw and writes location, facility and tags atomically.
// It returns the new facility id.
func (s *FacilityService) Create(ctx context.Context, raw map[string]any) (int64, error) {
	in := patch.NewFacilityInput(raw, patch.Create)
	if err := in.Err(); err != nil {
		metrics.RecordFacilityWrite("create", "invalid")
		return 0, fmt.Errorf("service.FacilityService.Create: %w", err)
	}
	name, _ := in.Name()

	w := newFacilityWrite(s.log, "create", 0)
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		loc, err := tx.Locations.Create(ctx, in.Location())
		if err != nil {
			return err
		}
		w.reached(stageLocationWritten)

		f, err := tx.Facilities.Create(ctx, name, loc.ID)
		if err != nil {
			return err
		}
		w.id = f.ID
		w.reached(stageFacilityWritten)

		if _, err := attachTags(ctx, tx, f.ID, in.Tags()); err != nil {
			return err
		}
		w.reached(stageTagsReconciled)
		return nil
	})
	if err := w.finish(ctx, err); err != nil {
		return 0, err
	}
	return w.id, nil
}

// Update applies a partial facility payload. Location fields and name are
// written only when provided and different; tags are additive, so tags
// already on the facility are never removed here.
func (s *FacilityService) Update(ctx context.Context, id int64, raw map[string]any) error {
	in := patch.NewFacilityInput(raw, patch.Update)
	if err := in.Err(); err != nil {
		metrics.RecordFacilityWrite("update", "invalid")
		return fmt.Errorf("service.FacilityService.Update: %w", err)
	}

	w := newFacilityWrite(s.log, "update", id)
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		current, err := tx.Facilities.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if diff := in.LocationDiff(current.Location); len(diff) > 0 {
			if err := tx.Locations.Update(ctx, current.LocationID, diff); err != nil {
				return err
			}
		}
		w.reached(stageLocationWritten)

		if name, ok := in.Name(); ok && name != current.Name {
			if err := tx.Facilities.Rename(ctx, id, name); err != nil {
				return err
			}
		}
		w.reached(stageFacilityWritten)

		if in.TagsProvided() {
			if _, err := attachTags(ctx, tx, id, in.Tags()); err != nil {
				return err
			}
		}
		w.reached(stageTagsReconciled)
		return nil
	})
	return w.finish(ctx, err)
}

// AddTags resolves and attaches each valid name, returning the names that
// were newly attached. Blank names and names already attached are skipped
// silently.
func (s *FacilityService) AddTags(ctx context.Context, facilityID int64, names []string) ([]string, error) {
	var added []string
	w := newFacilityWrite(s.log, "add_tags", facilityID)
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		if _, err := tx.Facilities.GetByIDForUpdate(ctx, facilityID); err != nil {
			return err
		}
		var err error
		added, err = attachTags(ctx, tx, facilityID, patch.TagNames(names))
		if err != nil {
			return err
		}
		w.reached(stageTagsReconciled)
		return nil
	})
	if err := w.finish(ctx, err); err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveTags detaches each named tag, returning the names actually removed.
// Unknown names and tags not on the facility are skipped silently.
func (s *FacilityService) RemoveTags(ctx context.Context, facilityID int64, names []string) ([]string, error) {
	removed := []string{}
	w := newFacilityWrite(s.log, "remove_tags", facilityID)
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		if _, err := tx.Facilities.GetByIDForUpdate(ctx, facilityID); err != nil {
			return err
		}
		rec := NewTagReconciler(tx.Tags)
		for _, name := range patch.TagNames(names) {
			tag, err := tx.Tags.FindByName(ctx, name)
			if isNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			n, err := rec.Detach(ctx, facilityID, tag.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				removed = append(removed, name)
			}
		}
		w.reached(stageTagsReconciled)
		return nil
	})
	if err := w.finish(ctx, err); err != nil {
		return nil, err
	}
	return removed, nil
}

// Delete removes a facility together with its employees and tag links.
func (s *FacilityService) Delete(ctx context.Context, id int64) error {
	w := newFacilityWrite(s.log, "delete", id)
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		if _, err := tx.Facilities.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Employees.DeleteByFacility(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Tags.DetachAll(ctx, id); err != nil {
			return err
		}
		return tx.Facilities.Delete(ctx, id)
	})
	return w.finish(ctx, err)
}

// attachTags resolves every name and links it to facilityID, returning the
// names whose link is new. names must already be sanitized and de-duplicated.
func attachTags(ctx context.Context, tx repo.Repos, facilityID int64, names []string) ([]string, error) {
	rec := NewTagReconciler(tx.Tags)
	added := []string{}
	for _, name := range names {
		tag, _, err := rec.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		ok, err := rec.Attach(ctx, facilityID, tag.ID)
		if isNotFound(err) {
			// Deleted after Resolve read it; the second Resolve recreates it.
			if tag, _, err = rec.Resolve(ctx, name); err != nil {
				return nil, err
			}
			ok, err = rec.Attach(ctx, facilityID, tag.ID)
		}
		if err != nil {
			return nil, err
		}
		if ok {
			added = append(added, name)
		}
	}
	return added, nil
}
