package domain

// Tag is a descriptive label shared across facilities.
// Names are unique case-insensitively; Name preserves the casing supplied by
// whoever created the tag first.
type Tag struct {
	ID   int64
	Name string
}
