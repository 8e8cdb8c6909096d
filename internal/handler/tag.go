package handler

import "net/http"

var tagErrors = errorMessages{notFound: msgTagNotFound, conflict: msgTagNotUnique, blocked: msgTagInUse}

type tagList struct {
	pageMeta
	Tags []tagView `json:"tags"`
}

type tagUpdateBody struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
}

// ListTags handles GET /api/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	p := s.pageParams(r)
	page, err := s.tags.List(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err, tagErrors)
		return
	}
	views := make([]tagView, len(page.Items))
	for i, t := range page.Items {
		views[i] = tagView{ID: t.ID, Name: t.Name}
	}
	writeJSON(w, http.StatusOK, tagList{pageMeta: newPageMeta(p, page.NextCursor), Tags: views})
}

// GetTag handles GET /api/tags/{id}.
func (s *Server) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgTagNotFound)
		return
	}
	t, err := s.tags.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, tagErrors)
		return
	}
	writeJSON(w, http.StatusOK, tagView{ID: t.ID, Name: t.Name})
}

// CreateTag handles POST /api/tags.
// A name that already exists in any casing is a 409.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	t, err := s.tags.Create(r.Context(), raw)
	if err != nil {
		s.writeServiceError(w, r, err, tagErrors)
		return
	}
	writeJSON(w, http.StatusCreated, createdBody{ID: t.ID})
}

// UpdateTag handles PUT and PATCH /api/tags/{id}.
// Renaming to the current name reports updated=false rather than an error.
func (s *Server) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgTagNotFound)
		return
	}
	raw, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	updated, err := s.tags.Update(r.Context(), id, raw)
	if err != nil {
		s.writeServiceError(w, r, err, tagErrors)
		return
	}
	if !updated {
		writeJSON(w, http.StatusOK, tagUpdateBody{Message: "No changes", Updated: false})
		return
	}
	writeJSON(w, http.StatusOK, tagUpdateBody{Message: "Tag updated", Updated: true})
}

// DeleteTag handles DELETE /api/tags/{id}.
// Refused with 409 while any facility carries the tag.
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgTagNotFound)
		return
	}
	if err := s.tags.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, tagErrors)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
