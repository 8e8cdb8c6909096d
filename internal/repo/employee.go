package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-api/internal/domain"
)

// EmployeeRepo defines the persistence operations for Employees.
type EmployeeRepo interface {
	// ListByFacility returns one id-ordered page of a facility's employees.
	ListByFacility(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error)

	// GetByID returns domain.ErrNotFound if no employee has that id.
	GetByID(ctx context.Context, id int64) (domain.Employee, error)

	Create(ctx context.Context, e domain.Employee) (domain.Employee, error)

	// Update writes only the columns named in patch. An empty patch is a no-op.
	Update(ctx context.Context, id int64, patch map[string]string) error

	Delete(ctx context.Context, id int64) error

	// DeleteByFacility removes every employee of a facility and returns how many went.
	DeleteByFacility(ctx context.Context, facilityID int64) (int64, error)

	// ListByFacilities returns every employee of the given facilities, keyed
	// by facility id and ordered by employee id.
	ListByFacilities(ctx context.Context, facilityIDs []int64) (map[int64][]domain.Employee, error)

	// CountByFacilities returns employee counts keyed by facility id.
	// Facilities without employees are absent from the map.
	CountByFacilities(ctx context.Context, facilityIDs []int64) (map[int64]int, error)
}

var employeeColumns = map[string]bool{
	"name": true, "email": true, "phone": true, "position": true,
}

type pgEmployeeRepo struct {
	db db
}

// NewEmployeeRepo constructs an EmployeeRepo backed by the provided db connection.
func NewEmployeeRepo(db db) EmployeeRepo {
	return &pgEmployeeRepo{db: db}
}

const employeeSelect = `SELECT id, facility_id, name, email, phone, position FROM employees`

func (r *pgEmployeeRepo) ListByFacility(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error) {
	const q = employeeSelect + `
		WHERE facility_id = @facility_id AND id >= @cursor
		ORDER BY id
		LIMIT @limit_plus_one`

	args := pgx.NamedArgs{"facility_id": facilityID}
	page, err := fetchPage(ctx, r.db, q, args, p, scanEmployee, employeeID)
	if err != nil {
		return domain.Page[domain.Employee]{}, fmt.Errorf("repo.EmployeeRepo.ListByFacility: %w", err)
	}
	return page, nil
}

func (r *pgEmployeeRepo) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, employeeSelect+` WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.GetByID: %w", notFound(err))
	}
	return e, nil
}

func (r *pgEmployeeRepo) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	const q = `
		INSERT INTO employees (facility_id, name, email, phone, position)
		VALUES (@facility_id, @name, @email, @phone, @position)
		RETURNING id, facility_id, name, email, phone, position`

	args := pgx.NamedArgs{
		"facility_id": e.FacilityID,
		"name":        e.Name,
		"email":       e.Email,
		"phone":       e.Phone,
		"position":    e.Position,
	}
	created, err := scanEmployee(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgEmployeeRepo) Update(ctx context.Context, id int64, patch map[string]string) error {
	args := pgx.NamedArgs{"id": id}
	set, ok := setClause(patch, employeeColumns, args)
	if !ok {
		return nil
	}
	tag, err := r.db.Exec(ctx, `UPDATE employees SET `+set+` WHERE id = @id`, args)
	if err != nil {
		return fmt.Errorf("repo.EmployeeRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EmployeeRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEmployeeRepo) DeleteByFacility(ctx context.Context, facilityID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE facility_id = @facility_id`,
		pgx.NamedArgs{"facility_id": facilityID})
	if err != nil {
		return 0, fmt.Errorf("repo.EmployeeRepo.DeleteByFacility: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgEmployeeRepo) ListByFacilities(ctx context.Context, facilityIDs []int64) (map[int64][]domain.Employee, error) {
	out := make(map[int64][]domain.Employee, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, employeeSelect+` WHERE facility_id = ANY(@ids) ORDER BY id`,
		pgx.NamedArgs{"ids": facilityIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.ListByFacilities: %w", err)
	}
	employees, err := collect(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.ListByFacilities: %w", err)
	}
	for _, e := range employees {
		out[e.FacilityID] = append(out[e.FacilityID], e)
	}
	return out, nil
}

func (r *pgEmployeeRepo) CountByFacilities(ctx context.Context, facilityIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(facilityIDs))
	if len(facilityIDs) == 0 {
		return counts, nil
	}
	const q = `
		SELECT facility_id, count(*)
		FROM employees
		WHERE facility_id = ANY(@ids)
		GROUP BY facility_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": facilityIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.CountByFacilities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id int64
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("repo.EmployeeRepo.CountByFacilities: scan: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.CountByFacilities: rows: %w", err)
	}
	return counts, nil
}

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	err := s.Scan(&e.ID, &e.FacilityID, &e.Name, &e.Email, &e.Phone, &e.Position)
	return e, err
}

func employeeID(e domain.Employee) int64 { return e.ID }
