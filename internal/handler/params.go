package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/catering-api/internal/domain"
)

// pathID binds the {id} path parameter. ok is false for anything that is
// not a positive integer; callers answer with the resource's 404.
func pathID(r *http.Request) (id int64, ok bool) {
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err == nil && id > 0
}

// queryString binds an optional string query parameter, "" when absent.
func queryString(r *http.Request, name string) string {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil || v == nil {
		return ""
	}
	return *v
}

// pageParams binds limit and cursor. A missing, malformed or non-positive
// limit becomes the server's page size; a bad cursor starts from the top.
func (s *Server) pageParams(r *http.Request) domain.PageParams {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil || limit == nil || *limit < 1 {
		limit = &s.pageSize
	}
	var cursor *string
	if err := runtime.BindQueryParameter("form", true, false, "cursor", r.URL.Query(), &cursor); err != nil {
		cursor = nil
	}
	return domain.NewPageParams(limit, cursor)
}

// pageMeta is the pagination envelope shared by every list response.
type pageMeta struct {
	Limit      int     `json:"limit"`
	Cursor     string  `json:"cursor"`
	NextCursor *string `json:"next_cursor"`
}

func newPageMeta(p domain.PageParams, next *int64) pageMeta {
	return pageMeta{Limit: p.Limit, Cursor: p.RawCursor, NextCursor: domain.EncodeCursorOrNil(next)}
}

// decodeObject reads a JSON object body. A malformed or non-object body
// decodes to an empty payload so field validation reports what is missing.
// The only error returned is an oversized body.
func decodeObject(r *http.Request) (map[string]any, error) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if tooLarge(err) {
			return nil, err
		}
		return map[string]any{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return obj, nil
}

// decodeNames reads a JSON array body and keeps its string elements.
// Non-string elements and non-array bodies are ignored.
func decodeNames(r *http.Request) ([]string, error) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if tooLarge(err) {
			return nil, err
		}
		return []string{}, nil
	}
	items, _ := raw.([]any)
	names := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
