package handler

import "net/http"

var employeeErrors = errorMessages{notFound: msgEmployeeNotFound}

type employeeList struct {
	pageMeta
	Employees []employeeView `json:"employees"`
}

// ListEmployees handles GET /api/facilities/{id}/employees.
func (s *Server) ListEmployees(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	p := s.pageParams(r)
	page, err := s.employees.ListByFacility(r.Context(), facilityID, p)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	writeJSON(w, http.StatusOK, employeeList{pageMeta: newPageMeta(p, page.NextCursor), Employees: toEmployeeViews(page.Items)})
}

// CreateEmployee handles POST /api/facilities/{id}/employees.
func (s *Server) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgFacilityNotFound)
		return
	}
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	e, err := s.employees.Create(r.Context(), facilityID, raw)
	if err != nil {
		s.writeServiceError(w, r, err, facilityErrors)
		return
	}
	writeJSON(w, http.StatusCreated, createdBody{ID: e.ID})
}

// GetEmployee handles GET /api/employees/{id}.
func (s *Server) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	e, err := s.employees.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, employeeErrors)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeView(e))
}

// UpdateEmployee handles PUT and PATCH /api/employees/{id}.
func (s *Server) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	if err := s.employees.Update(r.Context(), id, raw); err != nil {
		s.writeServiceError(w, r, err, employeeErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Employee updated"})
}

// DeleteEmployee handles DELETE /api/employees/{id}.
func (s *Server) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	if err := s.employees.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, employeeErrors)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
