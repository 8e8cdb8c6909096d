package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-api/internal/domain"
)

// LocationRepo defines the persistence operations for Locations.
type LocationRepo interface {
	// List returns one id-ordered page of locations.
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error)

	// GetByID returns domain.ErrNotFound if no location has that id.
	GetByID(ctx context.Context, id int64) (domain.Location, error)

	// Create inserts a location and returns it with its new id.
	Create(ctx context.Context, l domain.Location) (domain.Location, error)

	// Update writes only the columns named in patch. An empty patch is a no-op.
	// Returns domain.ErrNotFound if no location has that id.
	Update(ctx context.Context, id int64, patch map[string]string) error

	// Delete returns domain.ErrNotFound if no location has that id.
	Delete(ctx context.Context, id int64) error

	// InUse reports whether any facility references the location.
	InUse(ctx context.Context, id int64) (bool, error)
}

var locationColumns = map[string]bool{
	"city": true, "address": true, "zip_code": true, "country_code": true, "phone_number": true,
}

type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

const locationSelect = `SELECT id, city, address, zip_code, country_code, phone_number FROM locations`

func (r *pgLocationRepo) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error) {
	const q = locationSelect + `
		WHERE id >= @cursor
		ORDER BY id
		LIMIT @limit_plus_one`

	page, err := fetchPage(ctx, r.db, q, nil, p, scanLocation, locationID)
	if err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	return page, nil
}

func (r *pgLocationRepo) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	const q = locationSelect + ` WHERE id = @id`

	l, err := scanLocation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", notFound(err))
	}
	return l, nil
}

func (r *pgLocationRepo) Create(ctx context.Context, l domain.Location) (domain.Location, error) {
	const q = `
		INSERT INTO locations (city, address, zip_code, country_code, phone_number)
		VALUES (@city, @address, @zip_code, @country_code, @phone_number)
		RETURNING id, city, address, zip_code, country_code, phone_number`

	args := pgx.NamedArgs{
		"city":         l.City,
		"address":      l.Address,
		"zip_code":     l.ZipCode,
		"country_code": l.CountryCode,
		"phone_number": l.PhoneNumber,
	}
	created, err := scanLocation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgLocationRepo) Update(ctx context.Context, id int64, patch map[string]string) error {
	args := pgx.NamedArgs{"id": id}
	set, ok := setClause(patch, locationColumns, args)
	if !ok {
		return nil
	}
	tag, err := r.db.Exec(ctx, `UPDATE locations SET `+set+` WHERE id = @id`, args)
	if err != nil {
		return fmt.Errorf("repo.LocationRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LocationRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLocationRepo) InUse(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM facilities WHERE location_id = @id)`

	var used bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&used); err != nil {
		return false, fmt.Errorf("repo.LocationRepo.InUse: %w", err)
	}
	return used, nil
}

func scanLocation(s scanner) (domain.Location, error) {
	var l domain.Location
	err := s.Scan(&l.ID, &l.City, &l.Address, &l.ZipCode, &l.CountryCode, &l.PhoneNumber)
	return l, err
}

func locationID(l domain.Location) int64 { return l.ID }
