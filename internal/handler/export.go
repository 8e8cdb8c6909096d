package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/catering-api/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"facility_id", "facility_name", "creation_date",
	"city", "address", "zip_code", "country_code", "phone_number",
	"tags", "employee_count",
}

type exportRowView struct {
	FacilityID    int64     `json:"facility_id"`
	FacilityName  string    `json:"facility_name"`
	CreationDate  time.Time `json:"creation_date"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	ZipCode       string    `json:"zip_code"`
	CountryCode   string    `json:"country_code"`
	PhoneNumber   string    `json:"phone_number"`
	Tags          []string  `json:"tags"`
	EmployeeCount int       `json:"employee_count"`
}

// GetExport handles GET /api/export.
// It returns one row per facility. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(queryString(r, "format"))
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, errorMessages{})
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRowView, len(rows))
	for i, row := range rows {
		out[i] = toExportRowView(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV. Tags within a row are pipe-separated ("|")
// to keep each facility on a single line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail; csv errors surface on Flush only.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(toCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="facilities.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func toExportRowView(r domain.ExportRow) exportRowView {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return exportRowView{
		FacilityID:    r.FacilityID,
		FacilityName:  r.FacilityName,
		CreationDate:  r.CreationDate,
		City:          r.City,
		Address:       r.Address,
		ZipCode:       r.ZipCode,
		CountryCode:   r.CountryCode,
		PhoneNumber:   r.PhoneNumber,
		Tags:          tags,
		EmployeeCount: r.EmployeeCount,
	}
}

func toCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.FacilityID, 10),
		r.FacilityName,
		r.CreationDate.UTC().Format(time.RFC3339),
		r.City,
		r.Address,
		r.ZipCode,
		r.CountryCode,
		r.PhoneNumber,
		strings.Join(r.Tags, "|"),
		strconv.Itoa(r.EmployeeCount),
	}
}
