package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-api/internal/domain"
)

// FacilityRepo defines the persistence operations for Facilities. Reads
// return the facility joined with its location; tags and employees are
// loaded by their own repos.
type FacilityRepo interface {
	// List returns one id-ordered page of facilities.
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error)

	// Search is List narrowed by f. The tag filter is an EXISTS check, so it
	// never trims the tag lists loaded afterwards.
	Search(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error)

	// GetByID returns domain.ErrNotFound if no facility has that id.
	GetByID(ctx context.Context, id int64) (domain.Facility, error)

	// GetByIDForUpdate is GetByID holding row locks on the facility and its
	// location until the surrounding transaction ends. Writers that add rows
	// pointing at the facility read it this way first, so they serialize
	// with a concurrent Delete. Returns domain.ErrNotFound if no facility has
	// that id.
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Facility, error)

	// Create inserts a facility row referencing locationID.
	Create(ctx context.Context, name string, locationID int64) (domain.Facility, error)

	// Rename returns domain.ErrNotFound if no facility has that id.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes only the facility row; callers clear employees and tag
	// links first. Returns domain.ErrNotFound if no facility has that id.
	Delete(ctx context.Context, id int64) error
}

type pgFacilityRepo struct {
	db db
}

// NewFacilityRepo constructs a FacilityRepo backed by the provided db connection.
func NewFacilityRepo(db db) FacilityRepo {
	return &pgFacilityRepo{db: db}
}

const facilitySelect = `
		SELECT f.id, f.name, f.creation_date, f.location_id,
		       l.id, l.city, l.address, l.zip_code, l.country_code, l.phone_number
		FROM facilities f
		JOIN locations l ON l.id = f.location_id`

func (r *pgFacilityRepo) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error) {
	const q = facilitySelect + `
		WHERE f.id >= @cursor
		ORDER BY f.id
		LIMIT @limit_plus_one`

	page, err := fetchPage(ctx, r.db, q, nil, p, scanFacility, facilityID)
	if err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("repo.FacilityRepo.List: %w", err)
	}
	return page, nil
}

func (r *pgFacilityRepo) Search(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error) {
	// Empty filters are disabled with "@x = ''" so the statement text stays
	// constant and pgx can cache its plan.
	const q = facilitySelect + `
		WHERE f.id >= @cursor
		  AND (@name = '' OR f.name ILIKE '%' || @name || '%')
		  AND (@city = '' OR l.city ILIKE '%' || @city || '%')
		  AND (@tag = '' OR EXISTS (
		        SELECT 1
		        FROM facility_tags ft
		        JOIN tags t ON t.id = ft.tag_id
		        WHERE ft.facility_id = f.id
		          AND t.name ILIKE '%' || @tag || '%'))
		ORDER BY f.id
		LIMIT @limit_plus_one`

	args := pgx.NamedArgs{"name": f.Name, "city": f.City, "tag": f.Tag}
	page, err := fetchPage(ctx, r.db, q, args, p, scanFacility, facilityID)
	if err != nil {
		return domain.Page[domain.Facility]{}, fmt.Errorf("repo.FacilityRepo.Search: %w", err)
	}
	return page, nil
}

func (r *pgFacilityRepo) GetByID(ctx context.Context, id int64) (domain.Facility, error) {
	const q = facilitySelect + ` WHERE f.id = @id`

	f, err := scanFacility(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Facility{}, fmt.Errorf("repo.FacilityRepo.GetByID: %w", notFound(err))
	}
	return f, nil
}

func (r *pgFacilityRepo) GetByIDForUpdate(ctx context.Context, id int64) (domain.Facility, error) {
	const q = facilitySelect + ` WHERE f.id = @id FOR UPDATE OF f, l`

	f, err := scanFacility(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Facility{}, fmt.Errorf("repo.FacilityRepo.GetByIDForUpdate: %w", notFound(err))
	}
	return f, nil
}

func (r *pgFacilityRepo) Create(ctx context.Context, name string, locationID int64) (domain.Facility, error) {
	const q = `
		INSERT INTO facilities (name, location_id)
		VALUES (@name, @location_id)
		RETURNING id, name, creation_date, location_id`

	var f domain.Facility
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "location_id": locationID}).
		Scan(&f.ID, &f.Name, &f.CreationDate, &f.LocationID)
	if err != nil {
		return domain.Facility{}, fmt.Errorf("repo.FacilityRepo.Create: %w", err)
	}
	f.Location.ID = f.LocationID
	return f, nil
}

func (r *pgFacilityRepo) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE facilities SET name = @name WHERE id = @id`,
		pgx.NamedArgs{"id": id, "name": name})
	if err != nil {
		return fmt.Errorf("repo.FacilityRepo.Rename: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FacilityRepo.Rename: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgFacilityRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM facilities WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FacilityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FacilityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanFacility(s scanner) (domain.Facility, error) {
	var f domain.Facility
	err := s.Scan(
		&f.ID, &f.Name, &f.CreationDate, &f.LocationID,
		&f.Location.ID, &f.Location.City, &f.Location.Address,
		&f.Location.ZipCode, &f.Location.CountryCode, &f.Location.PhoneNumber,
	)
	return f, err
}

func facilityID(f domain.Facility) int64 { return f.ID }
