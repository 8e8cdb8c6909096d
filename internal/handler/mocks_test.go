package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/handler"
)

// ---- mock FacilityServicer ---------------------------------------------------

type mockFacilityServicer struct {
	list       func(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error)
	search     func(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error)
	getByID    func(ctx context.Context, id int64) (domain.Facility, error)
	create     func(ctx context.Context, raw map[string]any) (int64, error)
	update     func(ctx context.Context, id int64, raw map[string]any) error
	addTags    func(ctx context.Context, id int64, names []string) ([]string, error)
	removeTags func(ctx context.Context, id int64, names []string) ([]string, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockFacilityServicer) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Facility], error) {
	return m.list(ctx, p)
}
func (m *mockFacilityServicer) Search(ctx context.Context, f domain.FacilityFilter, p domain.PageParams) (domain.Page[domain.Facility], error) {
	return m.search(ctx, f, p)
}
func (m *mockFacilityServicer) GetByID(ctx context.Context, id int64) (domain.Facility, error) {
	return m.getByID(ctx, id)
}
func (m *mockFacilityServicer) Create(ctx context.Context, raw map[string]any) (int64, error) {
	return m.create(ctx, raw)
}
func (m *mockFacilityServicer) Update(ctx context.Context, id int64, raw map[string]any) error {
	return m.update(ctx, id, raw)
}
func (m *mockFacilityServicer) AddTags(ctx context.Context, id int64, names []string) ([]string, error) {
	return m.addTags(ctx, id, names)
}
func (m *mockFacilityServicer) RemoveTags(ctx context.Context, id int64, names []string) ([]string, error) {
	return m.removeTags(ctx, id, names)
}
func (m *mockFacilityServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockFacilityServicer must satisfy handler.FacilityServicer.
var _ handler.FacilityServicer = (*mockFacilityServicer)(nil)

// ---- mock LocationServicer ---------------------------------------------------

type mockLocationServicer struct {
	list    func(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error)
	getByID func(ctx context.Context, id int64) (domain.Location, error)
	create  func(ctx context.Context, raw map[string]any) (domain.Location, error)
	update  func(ctx context.Context, id int64, raw map[string]any) error
	delete  func(ctx context.Context, id int64) error
}

func (m *mockLocationServicer) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Location], error) {
	return m.list(ctx, p)
}
func (m *mockLocationServicer) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	return m.getByID(ctx, id)
}
func (m *mockLocationServicer) Create(ctx context.Context, raw map[string]any) (domain.Location, error) {
	return m.create(ctx, raw)
}
func (m *mockLocationServicer) Update(ctx context.Context, id int64, raw map[string]any) error {
	return m.update(ctx, id, raw)
}
func (m *mockLocationServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ handler.LocationServicer = (*mockLocationServicer)(nil)

// ---- mock EmployeeServicer ---------------------------------------------------

type mockEmployeeServicer struct {
	listByFacility func(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error)
	getByID        func(ctx context.Context, id int64) (domain.Employee, error)
	create         func(ctx context.Context, facilityID int64, raw map[string]any) (domain.Employee, error)
	update         func(ctx context.Context, id int64, raw map[string]any) error
	delete         func(ctx context.Context, id int64) error
}

func (m *mockEmployeeServicer) ListByFacility(ctx context.Context, facilityID int64, p domain.PageParams) (domain.Page[domain.Employee], error) {
	return m.listByFacility(ctx, facilityID, p)
}
func (m *mockEmployeeServicer) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	return m.getByID(ctx, id)
}
func (m *mockEmployeeServicer) Create(ctx context.Context, facilityID int64, raw map[string]any) (domain.Employee, error) {
	return m.create(ctx, facilityID, raw)
}
func (m *mockEmployeeServicer) Update(ctx context.Context, id int64, raw map[string]any) error {
	return m.update(ctx, id, raw)
}
func (m *mockEmployeeServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ handler.EmployeeServicer = (*mockEmployeeServicer)(nil)

// ---- mock TagServicer --------------------------------------------------------

type mockTagServicer struct {
	list    func(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error)
	getByID func(ctx context.Context, id int64) (domain.Tag, error)
	create  func(ctx context.Context, raw map[string]any) (domain.Tag, error)
	update  func(ctx context.Context, id int64, raw map[string]any) (bool, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockTagServicer) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error) {
	return m.list(ctx, p)
}
func (m *mockTagServicer) GetByID(ctx context.Context, id int64) (domain.Tag, error) {
	return m.getByID(ctx, id)
}
func (m *mockTagServicer) Create(ctx context.Context, raw map[string]any) (domain.Tag, error) {
	return m.create(ctx, raw)
}
func (m *mockTagServicer) Update(ctx context.Context, id int64, raw map[string]any) (bool, error) {
	return m.update(ctx, id, raw)
}
func (m *mockTagServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ handler.TagServicer = (*mockTagServicer)(nil)

// ---- mock ExportServicer -----------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers -----------------------------------------------------------------

const testSecret = "test-secret"

// newTestRouter wires the real router around the given mocks. Rate limiting
// is disabled; the body limit is small enough to exercise 413.
func newTestRouter(svc handler.Services) http.Handler {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv := handler.NewServer(svc, 20, log)
	return handler.NewRouter(srv, handler.RouterConfig{
		Logger:       log,
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 4096,
		APISecret:    testSecret,
	})
}

// do sends an authenticated request and returns the recorder.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
