package domain

import "strings"

const (
	// DefaultPageLimit is used when the client omits limit or sends a non-positive one.
	DefaultPageLimit = 20
	// MaxPageLimit caps limit to prevent runaway queries.
	MaxPageLimit = 100
)

// PageParams carries limit/cursor values from the HTTP layer to the repo layer.
// Cursor is the decoded row id the page starts at (inclusive).
type PageParams struct {
	Limit  int
	Cursor int64
	// RawCursor is the cursor exactly as the client sent it, echoed back in
	// list responses. "0" when absent.
	RawCursor string
}

// NewPageParams builds PageParams from optional HTTP query params.
// Nil or non-positive limits fall back to DefaultPageLimit; an absent or
// undecodable cursor starts at the beginning of the collection rather than
// failing the request.
func NewPageParams(limit *int, cursor *string) PageParams {
	p := PageParams{Limit: DefaultPageLimit, RawCursor: "0"}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > MaxPageLimit {
			p.Limit = MaxPageLimit
		}
	}
	if cursor != nil {
		raw := strings.TrimSpace(*cursor)
		if raw != "" {
			p.RawCursor = raw
		}
		if id, ok := DecodeCursor(raw); ok {
			p.Cursor = id
		}
	}
	return p
}

// Page is one slice of an id-ordered collection.
// NextCursor is the id the following page starts at, or nil at the end.
type Page[T any] struct {
	Items      []T
	NextCursor *int64
}

// SplitPage applies the limit+1 rule to rows fetched with LIMIT limit+1:
// when more than limit rows came back, the first surplus row's id becomes
// the next cursor and only limit rows are kept.
func SplitPage[T any](rows []T, limit int, idOf func(T) int64) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	if limit < 1 || len(rows) <= limit {
		return Page[T]{Items: rows}
	}
	next := idOf(rows[limit])
	return Page[T]{Items: rows[:limit], NextCursor: &next}
}
