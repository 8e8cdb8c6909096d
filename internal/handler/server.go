// Package handler implements the HTTP handlers for the catering API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (facility.go, tag.go, etc.) and routes are
// registered in router.go.
package handler

import (
	"context"
	"log/slog"

	"github.com/pkordes/catering-api/internal/domain"
)

// FacilityServicer defines the facility operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or the service layer.
type FacilityServicer interface {
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error)
	Search(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error)
	GetByID(ctx context.Context, id int64) (domain.Facility, error)
	Create(ctx context.Context, raw map[string]any) (int64, error)
	Update(ctx context.Context, id int64, raw map[string]any) error
	AddTags(ctx context.Context, facilityID int64, names []string) ([]string, error)
	RemoveTags(ctx context.Context, facilityID int64, names []string) ([]string, error)
	Delete(ctx context.Context, id int64) error
}

// LocationServicer defines the location operations the handlers depend on.
type LocationServicer interface {
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error)
	GetByID(ctx context.Context, id int64) (domain.Location, error)
	Create(ctx context.Context, raw map[string]any) (domain.Location, error)
	Update(ctx context.Context, id int64, raw map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeServicer defines the employee operations the handlers depend on.
type EmployeeServicer interface {
	ListByFacility(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error)
	GetByID(ctx context.Context, id int64) (domain.Employee, error)
	Create(ctx context.Context, facilityID int64, raw map[string]any) (domain.Employee, error)
	Update(ctx context.Context, id int64, raw map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// TagServicer defines the tag operations the handlers depend on.
type TagServicer interface {
	List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error)
	GetByID(ctx context.Context, id int64) (domain.Tag, error)
	Create(ctx context.Context, raw map[string]any) (domain.Tag, error)
	Update(ctx context.Context, id int64, raw map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Services groups the handler dependencies. Nil members are allowed in
// tests that do not exercise them.
type Services struct {
	Facilities FacilityServicer
	Locations  LocationServicer
	Employees  EmployeeServicer
	Tags       TagServicer
	Export     ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	facilities FacilityServicer
	locations  LocationServicer
	employees  EmployeeServicer
	tags       TagServicer
	export     ExportServicer

	pageSize int
	log      *slog.Logger
}

// NewServer constructs the Server. pageSize is the list limit used when the
// client sends none; values below 1 fall back to domain.DefaultPageLimit.
// A nil logger falls back to slog.Default().
func NewServer(svc Services, pageSize int, log *slog.Logger) *Server {
	if pageSize < 1 {
		pageSize = domain.DefaultPageLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		facilities: svc.Facilities,
		locations:  svc.Locations,
		employees:  svc.Employees,
		tags:       svc.Tags,
		export:     svc.Export,
		pageSize:   pageSize,
		log:        log,
	}
}
