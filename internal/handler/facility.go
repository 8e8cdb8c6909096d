package handler

import (
	"net/http"

	"github.com/pkordes/catering-api/internal/domain"
)

var facilityErrors = errorMessages{notFound: msgFacilityNotFound}

type facilityList struct {
	pageMeta
	Facilities []facilityView `json:"facilities"`
}

func (s *Server) writeFacilityPage(w http.ResponseWriter, p domain.PageParams, page domain.Page[domain.Facility]) {
	views := make([]facilityView, len(page.Items))
	for i, f := range page.Items {
		views[i] = toFacilityView(f)
	}
	writeJSON(w, http.StatusOK, facilityList{pageMeta: newPageMeta(p, page.NextCursor), Facilities: views})
}

// ListFacilities handles GET /api/facilities.
// Supports ?limit= and ?cursor= (defaults: limit=page size, cursor from the start).
func (s *Server) ListFacilities(w http.ResponseWriter, r *http.Request) {
	p := s.pageParams(r)
	page, err := s.facilities.List(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	s.writeFacilityPage(w, p, page)
}

// SearchFacilities handles GET /api/facilities/search.
// name, city and tag are optional case-insensitive substring filters.
func (s *Server) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	p := s.pageParams(r)
	f := domain.FacilityFilter{
		Name: queryString(r, "name"),
		City: queryString(r, "city"),
		Tag:  queryString(r, "tag"),
	}
	page, err := s.facilities.Search(r.Context(), f, p)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	s.writeFacilityPage(w, p, page)
}

// GetFacility handles GET /api/facilities/{id}.
func (s *Server) GetFacility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	f, err := s.facilities.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	writeJSON(w, http.StatusOK, toFacilityView(f))
}

// CreateFacility handles POST /api/facilities.
// Location, facility and tags are written in one transaction.
func (s *Server) CreateFacility(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	id, err := s.facilities.Create(r.Context(), raw)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	writeJSON(w, http.StatusCreated, createdBody{ID: id})
}

// UpdateFacility handles PUT and PATCH /api/facilities/{id}.
// Only provided fields change; tags in the body are added, never removed.
func (s *Server) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	if err := s.facilities.Update(r.Context(), id, raw); err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Facility updated"})
}

// DeleteFacility handles DELETE /api/facilities/{id}.
func (s *Server) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	if err := s.facilities.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFacilityTags handles POST /api/facilities/{id}/tags.
// The body is an array of tag names; the response lists those newly attached.
func (s *Server) AddFacilityTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	names, err := decodeNames(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	added, err := s.facilities.AddTags(r.Context(), id, names)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	if added == nil {
		added = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"added": added})
}

// RemoveFacilityTags handles DELETE /api/facilities/{id}/tags.
func (s *Server) RemoveFacilityTags(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	names, err := decodeNames(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	removed, err := s.facilities.RemoveTags(r.Context(), id, names)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	if removed == nil {
		removed = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"removed": removed})
}
