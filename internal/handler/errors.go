package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/catering-api/internal/domain"
)

// Response messages shared by several handlers.
const (
	msgValidationFailed = "Validation failed"
	msgInternal         = "internal server error"
	msgBodyTooLarge     = "request body too large"

	msgFacilityNotFound = "Facility not found"
	msgLocationNotFound = "Location not found"
	msgEmployeeNotFound = "Employee not found"
	msgTagNotFound      = "Tag not found"
	msgTagNotUnique     = "Tag name must be unique"
	msgLocationInUse    = "Location is used by a facility"
	msgTagInUse         = "Tag is used by a facility"
)

// errorMessages are the client-facing texts for the expected failure kinds
// of one endpoint. Empty entries fall through to a 500.
type errorMessages struct {
	notFound string
	conflict string
	blocked  string
}

type errorBody struct {
	Error string `json:"error"`
}

type validationBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps a service error to its HTTP response.
// Anything not in the domain taxonomy is logged and reported as a bare 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{Message: msgValidationFailed, Errors: verr.Fields})
		return
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{Message: msgValidationFailed, Errors: map[string]string{}})
		return
	case errors.Is(err, domain.ErrNotFound) && msgs.notFound != "":
		writeError(w, http.StatusNotFound, msgs.notFound)
		return
	case errors.Is(err, domain.ErrConflict) && msgs.conflict != "":
		writeError(w, http.StatusConflict, msgs.conflict)
		return
	case errors.Is(err, domain.ErrBlocked) && msgs.blocked != "":
		writeError(w, http.StatusConflict, msgs.blocked)
		return
	}

	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}
