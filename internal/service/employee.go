package service

import (
	"context"
	"fmt"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// EmployeeService implements business logic for Employee operations.
// Employees always belong to an existing facility.
type EmployeeService struct {
	store repo.Store
}

// NewEmployeeService constructs an EmployeeService backed by store.
func NewEmployeeService(store repo.Store) *EmployeeService {
	return &EmployeeService{store: store}
}

// ListByFacility returns domain.ErrNotFound when the facility does not exist.
func (s *EmployeeService) ListByFacility(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error) {
	r := s.store.Repos()
	if _, err := r.Facilities.GetByID(ctx, facilityID); err != nil {
		return domain.Page[domain.Employee]{}, fmt.Errorf("service.EmployeeService.ListByFacility: %w", err)
	}
	page, err := r.Employees.ListByFacility(ctx, facilityID, p)
	if err != nil {
		return domain.Page[domain.Employee]{}, fmt.Errorf("service.EmployeeService.ListByFacility: %w", err)
	}
	return page, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	e, err := s.store.Repos().Employees.GetByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.GetByID: %w", err)
	}
	return e, nil
}

// Create validates raw and adds an employee to facilityID.
func (s *EmployeeService) Create(ctx context.Context, facilityID int64, raw map[string]any) (domain.Employee, error) {
	tr := patch.New(raw, patch.Create, patch.EmployeeRules...)
	if err := tr.Err(); err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Create: %w", err)
	}

	var created domain.Employee
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		if _, err := tx.Facilities.GetByIDForUpdate(ctx, facilityID); err != nil {
			return err
		}
		var err error
		created, err = tx.Employees.Create(ctx,
			patch.EmployeeFromPatch(domain.Employee{FacilityID: facilityID}, tr.Patch()))
		return err
	})
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Create: %w", err)
	}
	return created, nil
}

// Update writes the provided fields that differ from the stored row.
func (s *EmployeeService) Update(ctx context.Context, id int64, raw map[string]any) error {
	tr := patch.New(raw, patch.Update, patch.EmployeeRules...)
	if err := tr.Err(); err != nil {
		return fmt.Errorf("service.EmployeeService.Update: %w", err)
	}

	r := s.store.Repos()
	current, err := r.Employees.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.EmployeeService.Update: %w", err)
	}
	diff := tr.Diff(patch.EmployeeFields(current))
	if len(diff) == 0 {
		return nil
	}
	if err := r.Employees.Update(ctx, id, diff); err != nil {
		return fmt.Errorf("service.EmployeeService.Update: %w", err)
	}
	return nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Repos().Employees.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EmployeeService.Delete: %w", err)
	}
	return nil
}
