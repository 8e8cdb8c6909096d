// Package patch tracks which fields a client actually sent so that partial
// updates can tell "leave unchanged" (key absent) apart from "clear it"
// (key present with null or an empty string).
package patch

import (
	"strconv"

	"github.com/pkordes/catering-api/internal/domain"
)

// Mode selects create (every rule required) or update (only provided
// fields validated, empty payload rejected) semantics.
type Mode int

const (
	Create Mode = iota
	Update
)

// Rule describes one recognised input field.
type Rule struct {
	Field string
	// CreateCode is reported in Create mode when the value is missing or invalid.
	CreateCode string
	// UpdateCode is reported in Update mode when a provided value is invalid.
	UpdateCode string
	Valid      func(string) bool
	// Sanitize defaults to Text when nil.
	Sanitize func(string) string
}

// Tracker records presence and sanitized values for a set of rules.
type Tracker struct {
	mode     Mode
	prefix   string
	rules    []Rule
	provided map[string]bool
	badType  map[string]bool
	values   map[string]string
}

// New builds a Tracker from a decoded JSON object.
func New(raw map[string]any, mode Mode, rules ...Rule) *Tracker {
	return newTracker(raw, mode, "", rules)
}

func newTracker(raw map[string]any, mode Mode, prefix string, rules []Rule) *Tracker {
	t := &Tracker{
		mode:     mode,
		prefix:   prefix,
		rules:    rules,
		provided: make(map[string]bool, len(rules)),
		badType:  make(map[string]bool),
		values:   make(map[string]string, len(rules)),
	}
	for _, r := range rules {
		v, ok := raw[r.Field]
		t.provided[r.Field] = ok
		s, scalar := stringify(v)
		if !scalar {
			t.badType[r.Field] = true
		}
		sanitize := r.Sanitize
		if sanitize == nil {
			sanitize = Text
		}
		t.values[r.Field] = sanitize(s)
	}
	return t
}

// stringify converts a JSON scalar to its string form. Objects, arrays and
// booleans are not acceptable values for text fields.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}

// Provided reports whether field's key was present in the raw input,
// regardless of its value.
func (t *Tracker) Provided(field string) bool { return t.provided[field] }

// AnyProvided reports whether at least one recognised field was sent.
func (t *Tracker) AnyProvided() bool {
	for _, ok := range t.provided {
		if ok {
			return true
		}
	}
	return false
}

// Value returns the sanitized value of field ("" when absent).
func (t *Tracker) Value(field string) string { return t.values[field] }

// Errors returns field → code for every failed rule. In Update mode a payload
// without any recognised field yields only the payload error.
func (t *Tracker) Errors() map[string]string {
	if t.mode == Update && !t.AnyProvided() {
		return map[string]string{domain.PayloadField: domain.CodeAtLeastOneFieldRequired}
	}
	return t.fieldErrors()
}

func (t *Tracker) fieldErrors() map[string]string {
	errs := map[string]string{}
	for _, r := range t.rules {
		if t.mode == Update && !t.provided[r.Field] {
			continue
		}
		if !t.badType[r.Field] && r.Valid(t.values[r.Field]) {
			continue
		}
		code := r.CreateCode
		if t.mode == Update {
			code = r.UpdateCode
		}
		errs[t.prefix+r.Field] = code
	}
	return errs
}

// Err wraps Errors in a *domain.ValidationError, or returns nil.
func (t *Tracker) Err() error {
	if errs := t.Errors(); len(errs) > 0 {
		return domain.NewValidationError(errs)
	}
	return nil
}

// Patch returns the sanitized values of provided fields only. It is the
// column set of a partial update.
func (t *Tracker) Patch() map[string]string {
	out := make(map[string]string)
	for _, r := range t.rules {
		if t.provided[r.Field] {
			out[r.Field] = t.values[r.Field]
		}
	}
	return out
}

// Diff is Patch minus fields whose value already equals current[field].
// Re-sending unchanged values therefore yields an empty map, which callers
// treat as a successful no-op.
func (t *Tracker) Diff(current map[string]string) map[string]string {
	out := t.Patch()
	for k, v := range out {
		if cur, ok := current[k]; ok && cur == v {
			delete(out, k)
		}
	}
	return out
}
