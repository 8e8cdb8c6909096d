package handler

import (
	"time"

	"github.com/pkordes/catering-api/internal/domain"
)

type locationView struct {
	ID          int64  `json:"id"`
	City        string `json:"city"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

func toLocationView(l domain.Location) locationView {
	return locationView{
		ID:          l.ID,
		City:        l.City,
		Address:     l.Address,
		ZipCode:     l.ZipCode,
		CountryCode: l.CountryCode,
		PhoneNumber: l.PhoneNumber,
	}
}

type employeeView struct {
	ID         int64  `json:"id"`
	FacilityID int64  `json:"facility_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
}

func toEmployeeView(e domain.Employee) employeeView {
	return employeeView{
		ID:         e.ID,
		FacilityID: e.FacilityID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
	}
}

func toEmployeeViews(items []domain.Employee) []employeeView {
	out := make([]employeeView, len(items))
	for i, e := range items {
		out[i] = toEmployeeView(e)
	}
	return out
}

type tagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// facilityView always carries non-nil tags and employees so clients see []
// rather than null.
type facilityView struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	CreationDate time.Time      `json:"creation_date"`
	LocationID   int64          `json:"location_id"`
	Location     locationView   `json:"location"`
	Tags         []string       `json:"tags"`
	Employees    []employeeView `json:"employees"`
}

func toFacilityView(f domain.Facility) facilityView {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return facilityView{
		ID:           f.ID,
		Name:         f.Name,
		CreationDate: f.CreationDate,
		LocationID:   f.LocationID,
		Location:     toLocationView(f.Location),
		Tags:         tags,
		Employees:    toEmployeeViews(f.Employees),
	}
}

type createdBody struct {
	ID int64 `json:"id"`
}

type messageBody struct {
	Message string `json:"message"`
}
