package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// ---- in-memory Store -------------------------------------------------------
//
// memStore gives InTx real all-or-nothing semantics: fn runs against a copy
// of the data, which replaces the committed state only when fn returns nil.

type link struct{ facility, tag int64 }

type memDB struct {
	nextID     int64
	locations  map[int64]domain.Location
	facilities map[int64]domain.Facility
	employees  map[int64]domain.Employee
	tags       map[int64]domain.Tag
	links      map[link]bool

	// fail is shared by every copy so a test can inject an error into a
	// specific repo method, e.g. fail["Tags.Insert"] = errBoom.
	fail map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		locations:  map[int64]domain.Location{},
		facilities: map[int64]domain.Facility{},
		employees:  map[int64]domain.Employee{},
		tags:       map[int64]domain.Tag{},
		links:      map[link]bool{},
		fail:       map[string]error{},
	}
}

func (d *memDB) clone() *memDB {
	c := newMemDB()
	c.nextID = d.nextID
	c.fail = d.fail
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.facilities {
		c.facilities[k] = v
	}
	for k, v := range d.employees {
		c.employees[k] = v
	}
	for k, v := range d.tags {
		c.tags[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	return c
}

func (d *memDB) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *memDB) err(op string) error { return d.fail[op] }

type memStore struct {
	db        *memDB
	commits   int
	rollbacks int
}

func newMemStore() *memStore { return &memStore{db: newMemDB()} }

func (s *memStore) Repos() repo.Repos { return memRepos(s.db) }

func (s *memStore) InTx(_ context.Context, fn func(repo.Repos) error) error {
	work := s.db.clone()
	if err := fn(memRepos(work)); err != nil {
		s.rollbacks++
		return err
	}
	*s.db = *work
	s.commits++
	return nil
}

var _ repo.Store = (*memStore)(nil)

// racingStore stands in for a concurrent writer: before runs against the
// committed data just ahead of the next transaction, and wrap may replace
// the repos that transaction sees.
type racingStore struct {
	*memStore
	before func(d *memDB)
	wrap   func(r repo.Repos, d *memDB) repo.Repos
}

func (s *racingStore) InTx(ctx context.Context, fn func(repo.Repos) error) error {
	if s.before != nil {
		s.before(s.db)
		s.before = nil
	}
	return s.memStore.InTx(ctx, func(r repo.Repos) error {
		if s.wrap != nil {
			r = s.wrap(r, r.Tags.(*memTags).d)
		}
		return fn(r)
	})
}

var _ repo.Store = (*racingStore)(nil)

func memRepos(d *memDB) repo.Repos {
	return repo.Repos{
		Locations:  &memLocations{d},
		Facilities: &memFacilities{d},
		Employees:  &memEmployees{d},
		Tags:       &memTags{d},
	}
}

// pageOf mimics "WHERE id >= cursor ORDER BY id LIMIT limit+1".
func pageOf[T any](m map[int64]T, p domain.PageParams, keep func(T) bool) domain.Page[T] {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := []T{}
	idOf := map[int]int64{}
	for _, id := range ids {
		if id < p.Cursor || (keep != nil && !keep(m[id])) {
			continue
		}
		idOf[len(rows)] = id
		rows = append(rows, m[id])
		if len(rows) == p.Limit+1 {
			break
		}
	}
	page := domain.SplitPage(rows, p.Limit, func(T) int64 { return 0 })
	if page.NextCursor != nil {
		next := idOf[p.Limit]
		page.NextCursor = &next
	}
	return page
}

// ---- locations --------------------------------------------------------------

type memLocations struct{ d *memDB }

var _ repo.LocationRepo = (*memLocations)(nil)

func (r *memLocations) List(_ context.Context, p domain.PageParams) (domain.Page[domain.Location], error) {
	return pageOf(r.d.locations, p, nil), r.d.err("Locations.List")
}

func (r *memLocations) GetByID(_ context.Context, id int64) (domain.Location, error) {
	l, ok := r.d.locations[id]
	if !ok {
		return domain.Location{}, domain.ErrNotFound
	}
	return l, nil
}

func (r *memLocations) Create(_ context.Context, l domain.Location) (domain.Location, error) {
	if err := r.d.err("Locations.Create"); err != nil {
		return domain.Location{}, err
	}
	l.ID = r.d.id()
	r.d.locations[l.ID] = l
	return l, nil
}

func (r *memLocations) Update(_ context.Context, id int64, p map[string]string) error {
	if err := r.d.err("Locations.Update"); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	l, ok := r.d.locations[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.d.locations[id] = patch.LocationFromPatch(l, p)
	return nil
}

func (r *memLocations) Delete(_ context.Context, id int64) error {
	if _, ok := r.d.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.d.locations, id)
	return nil
}

func (r *memLocations) InUse(_ context.Context, id int64) (bool, error) {
	for _, f := range r.d.facilities {
		if f.LocationID == id {
			return true, nil
		}
	}
	return false, nil
}

// ---- facilities -------------------------------------------------------------

type memFacilities struct{ d *memDB }

var _ repo.FacilityRepo = (*memFacilities)(nil)

func (r *memFacilities) withLocation(f domain.Facility) domain.Facility {
	f.Location = r.d.locations[f.LocationID]
	return f
}

func (r *memFacilities) joined() map[int64]domain.Facility {
	out := make(map[int64]domain.Facility, len(r.d.facilities))
	for id, f := range r.d.facilities {
		out[id] = r.withLocation(f)
	}
	return out
}

func (r *memFacilities) List(_ context.Context, p domain.PageParams) (domain.Page[domain.Facility], error) {
	if err := r.d.err("Facilities.List"); err != nil {
		return domain.Page[domain.Facility]{}, err
	}
	return pageOf(r.joined(), p, nil), nil
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *memFacilities) Search(_ context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error) {
	return pageOf(r.joined(), p, func(x domain.Facility) bool {
		if f.Name != "" && !contains(x.Name, f.Name) {
			return false
		}
		if f.City != "" && !contains(x.Location.City, f.City) {
			return false
		}
		if f.Tag != "" {
			for l := range r.d.links {
				if l.facility == x.ID && contains(r.d.tags[l.tag].Name, f.Tag) {
					return true
				}
			}
			return false
		}
		return true
	}), nil
}

func (r *memFacilities) GetByID(_ context.Context, id int64) (domain.Facility, error) {
	f, ok := r.d.facilities[id]
	if !ok {
		return domain.Facility{}, domain.ErrNotFound
	}
	return r.withLocation(f), nil
}

// GetByIDForUpdate has nothing to lock: memStore transactions are serial.
func (r *memFacilities) GetByIDForUpdate(ctx context.Context, id int64) (domain.Facility, error) {
	return r.GetByID(ctx, id)
}

func (r *memFacilities) Create(_ context.Context, name string, locationID int64) (domain.Facility, error) {
	if err := r.d.err("Facilities.Create"); err != nil {
		return domain.Facility{}, err
	}
	f := domain.Facility{ID: r.d.id(), Name: name, LocationID: locationID, CreationDate: time.Now().UTC()}
	r.d.facilities[f.ID] = f
	return f, nil
}

func (r *memFacilities) Rename(_ context.Context, id int64, name string) error {
	if err := r.d.err("Facilities.Rename"); err != nil {
		return err
	}
	f, ok := r.d.facilities[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.Name = name
	r.d.facilities[id] = f
	return nil
}

func (r *memFacilities) Delete(_ context.Context, id int64) error {
	if _, ok := r.d.facilities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.d.facilities, id)
	return nil
}

// ---- employees --------------------------------------------------------------

type memEmployees struct{ d *memDB }

var _ repo.EmployeeRepo = (*memEmployees)(nil)

func (r *memEmployees) ListByFacility(_ context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error) {
	return pageOf(r.d.employees, p, func(e domain.Employee) bool { return e.FacilityID == facilityID }), nil
}

func (r *memEmployees) GetByID(_ context.Context, id int64) (domain.Employee, error) {
	e, ok := r.d.employees[id]
	if !ok {
		return domain.Employee{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *memEmployees) Create(_ context.Context, e domain.Employee) (domain.Employee, error) {
	e.ID = r.d.id()
	r.d.employees[e.ID] = e
	return e, nil
}

func (r *memEmployees) Update(_ context.Context, id int64, p map[string]string) error {
	if err := r.d.err("Employees.Update"); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	e, ok := r.d.employees[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.d.employees[id] = patch.EmployeeFromPatch(e, p)
	return nil
}

func (r *memEmployees) Delete(_ context.Context, id int64) error {
	if _, ok := r.d.employees[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.d.employees, id)
	return nil
}

func (r *memEmployees) DeleteByFacility(_ context.Context, facilityID int64) (int64, error) {
	var n int64
	for id, e := range r.d.employees {
		if e.FacilityID == facilityID {
			delete(r.d.employees, id)
			n++
		}
	}
	return n, nil
}

func (r *memEmployees) ListByFacilities(_ context.Context, ids []int64) (map[int64][]domain.Employee, error) {
	out := map[int64][]domain.Employee{}
	page := pageOf(r.d.employees, domain.PageParams{Limit: len(r.d.employees) + 1}, nil)
	for _, e := range page.Items {
		for _, id := range ids {
			if e.FacilityID == id {
				out[id] = append(out[id], e)
			}
		}
	}
	return out, nil
}

func (r *memEmployees) CountByFacilities(_ context.Context, ids []int64) (map[int64]int, error) {
	out := map[int64]int{}
	for _, e := range r.d.employees {
		for _, id := range ids {
			if e.FacilityID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

// ---- tags -------------------------------------------------------------------

type memTags struct{ d *memDB }

var _ repo.TagRepo = (*memTags)(nil)

func (r *memTags) List(_ context.Context, p domain.PageParams) (domain.Page[domain.Tag], error) {
	return pageOf(r.d.tags, p, nil), nil
}

func (r *memTags) GetByID(_ context.Context, id int64) (domain.Tag, error) {
	t, ok := r.d.tags[id]
	if !ok {
		return domain.Tag{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *memTags) GetByIDForUpdate(ctx context.Context, id int64) (domain.Tag, error) {
	return r.GetByID(ctx, id)
}

func (r *memTags) FindByName(_ context.Context, name string) (domain.Tag, error) {
	if err := r.d.err("Tags.FindByName"); err != nil {
		return domain.Tag{}, err
	}
	for _, t := range r.d.tags {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return domain.Tag{}, domain.ErrNotFound
}

func (r *memTags) Insert(ctx context.Context, name string) (domain.Tag, bool, error) {
	if err := r.d.err("Tags.Insert"); err != nil {
		return domain.Tag{}, false, err
	}
	if _, err := r.FindByName(ctx, name); err == nil {
		return domain.Tag{}, false, nil
	}
	t := domain.Tag{ID: r.d.id(), Name: name}
	r.d.tags[t.ID] = t
	return t, true, nil
}

func (r *memTags) Rename(_ context.Context, id int64, name string) error {
	t, ok := r.d.tags[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.d.tags {
		if other.ID != id && strings.EqualFold(other.Name, name) {
			return domain.ErrConflict
		}
	}
	t.Name = name
	r.d.tags[id] = t
	return nil
}

func (r *memTags) Delete(_ context.Context, id int64) error {
	if _, ok := r.d.tags[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.d.tags, id)
	return nil
}

func (r *memTags) IsReferenced(_ context.Context, id int64) (bool, error) {
	for l := range r.d.links {
		if l.tag == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTags) Attach(_ context.Context, facilityID, tagID int64) (bool, error) {
	if err := r.d.err("Tags.Attach"); err != nil {
		return false, err
	}
	if _, ok := r.d.tags[tagID]; !ok {
		return false, domain.ErrNotFound
	}
	k := link{facilityID, tagID}
	if r.d.links[k] {
		return false, nil
	}
	r.d.links[k] = true
	return true, nil
}

func (r *memTags) Detach(_ context.Context, facilityID, tagID int64) (int64, error) {
	k := link{facilityID, tagID}
	if !r.d.links[k] {
		return 0, nil
	}
	delete(r.d.links, k)
	return 1, nil
}

func (r *memTags) DetachAll(_ context.Context, facilityID int64) (int64, error) {
	var n int64
	for l := range r.d.links {
		if l.facility == facilityID {
			delete(r.d.links, l)
			n++
		}
	}
	return n, nil
}

func (r *memTags) NamesByFacilities(_ context.Context, ids []int64) (map[int64][]string, error) {
	out := map[int64][]string{}
	for l := range r.d.links {
		for _, id := range ids {
			if l.facility == id {
				out[id] = append(out[id], r.d.tags[l.tag].Name)
			}
		}
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out, nil
}

var errBoom = errors.New("boom")

func toLower(s string) string { return strings.ToLower(s) }
