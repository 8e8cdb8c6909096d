package service

import (
	"context"
	"fmt"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/repo"
)

// exportPageSize is the page size used while walking every facility.
const exportPageSize = domain.MaxPageLimit

// ExportService assembles a flat export of every facility.
type ExportService struct {
	store repo.Store
}

// NewExportService constructs an ExportService backed by store.
func NewExportService(store repo.Store) *ExportService {
	return &ExportService{store: store}
}

// Export walks the facility collection page by page until no next cursor
// remains and returns one row per facility, in id order.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	r := s.store.Repos()
	rows := []domain.ExportRow{}

	p := domain.PageParams{Limit: exportPageSize}
	for {
		page, err := r.Facilities.List(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		if len(page.Items) > 0 {
			batch, err := s.rows(ctx, r, page.Items)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: %w", err)
			}
			rows = append(rows, batch...)
		}
		if page.NextCursor == nil {
			return rows, nil
		}
		p.Cursor = *page.NextCursor
	}
}

func (s *ExportService) rows(ctx context.Context, r repo.Repos, facilities []domain.Facility) ([]domain.ExportRow, error) {
	ids := make([]int64, len(facilities))
	for i, f := range facilities {
		ids[i] = f.ID
	}
	tags, err := r.Tags.NamesByFacilities(ctx, ids)
	if err != nil {
		return nil, err
	}
	counts, err := r.Employees.CountByFacilities(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ExportRow, len(facilities))
	for i, f := range facilities {
		t := tags[f.ID]
		if t == nil {
			t = []string{}
		}
		out[i] = domain.ExportRow{
			FacilityID:    f.ID,
			FacilityName:  f.Name,
			CreationDate:  f.CreationDate,
			City:          f.Location.City,
			Address:       f.Location.Address,
			ZipCode:       f.Location.ZipCode,
			CountryCode:   f.Location.CountryCode,
			PhoneNumber:   f.Location.PhoneNumber,
			Tags:          t,
			EmployeeCount: counts[f.ID],
		}
	}
	return out, nil
}
