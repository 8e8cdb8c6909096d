package domain

import "time"

// ExportRow is a single row in the full-data export: one row per facility,
// with its location flattened in. Tags are ordered by name; callers that
// need a joined string (e.g. CSV) join them themselves.
type ExportRow struct {
	FacilityID   int64
	FacilityName string
	CreationDate time.Time

	City        string
	Address     string
	ZipCode     string
	CountryCode string
	PhoneNumber string

	Tags          []string
	EmployeeCount int
}
