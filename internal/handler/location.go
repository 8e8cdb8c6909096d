package handler

import "net/http"

var locationErrors = errorMessages{notFound: msgLocationNotFound, blocked: msgLocationInUse}

type locationList struct {
	pageMeta
	Locations []locationView `json:"locations"`
}

// ListLocations handles GET /api/locations.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	p := s.pageParams(r)
	page, err := s.locations.List(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err, locationErrors)
		return
	}
	views := make([]locationView, len(page.Items))
	for i, l := range page.Items {
		views[i] = toLocationView(l)
	}
	writeJSON(w, http.StatusOK, locationList{pageMeta: newPageMeta(p, page.NextCursor), Locations: views})
}

// GetLocation handles GET /api/locations/{id}.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgLocationNotFound)
		return
	}
	l, err := s.locations.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, locationErrors)
		return
	}
	writeJSON(w, http.StatusOK, toLocationView(l))
}

// CreateLocation handles POST /api/locations.
func (s *Server) CreateLocation(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	l, err := s.locations.Create(r.Context(), raw)
	if err != nil {
		s.writeServiceError(w, r, err, locationErrors)
		return
	}
	writeJSON(w, http.StatusCreated, createdBody{ID: l.ID})
}

// UpdateLocation handles PUT and PATCH /api/locations/{id}.
func (s *Server) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgLocationNotFound)
		return
	}
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	if err := s.locations.Update(r.Context(), id, raw); err != nil {
		s.writeServiceError(w, r, err, locationErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Location updated"})
}

// DeleteLocation handles DELETE /api/locations/{id}.
// Refused with 409 while a facility still references the location.
func (s *Server) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgLocationNotFound)
		return
	}
	if err := s.locations.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, locationErrors)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
