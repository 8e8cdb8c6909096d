package patch

import "github.com/pkordes/catering-api/internal/domain"

// FacilityInput tracks a facility payload: its own name, a nested location
// object, and a list of tag names.
type FacilityInput struct {
	mode     Mode
	name     *Tracker
	location *Tracker

	locationProvided bool
	tagsProvided     bool
	tagsInvalid      bool
	tags             []string
}

// NewFacilityInput builds a FacilityInput from a decoded JSON object.
// location only counts as provided when it is an object; tags must be an
// array of strings.
func NewFacilityInput(raw map[string]any, mode Mode) *FacilityInput {
	in := &FacilityInput{
		mode: mode,
		name: New(raw, mode, facilityNameRules...),
	}

	loc, isObject := raw[FieldLocation].(map[string]any)
	in.locationProvided = isObject
	if !isObject {
		loc = map[string]any{}
	}
	in.location = newTracker(loc, mode, FieldLocation+".", facilityLocationRules)

	if v, ok := raw[FieldTags]; ok {
		in.tagsProvided = true
		names, valid := stringSlice(v)
		in.tagsInvalid = !valid
		in.tags = TagNames(names)
	}
	return in
}

func stringSlice(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return x, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// IsEmptyPayload reports whether an update carries nothing to apply.
func (in *FacilityInput) IsEmptyPayload() bool {
	locationSent := in.locationProvided && in.location.AnyProvided()
	return !in.name.AnyProvided() && !in.tagsProvided && !locationSent
}

// Errors returns field → code. Location errors are keyed "location.<field>".
func (in *FacilityInput) Errors() map[string]string {
	if in.mode == Update && in.IsEmptyPayload() {
		return map[string]string{domain.PayloadField: domain.CodeAtLeastOneFieldRequired}
	}
	errs := in.name.fieldErrors()
	if in.mode == Create || in.locationProvided {
		for k, v := range in.location.fieldErrors() {
			errs[k] = v
		}
	}
	if in.tagsProvided && in.tagsInvalid {
		errs[FieldTags] = domain.CodeMustBeArrayOfStrings
	}
	return errs
}

// Err wraps Errors in a *domain.ValidationError, or returns nil.
func (in *FacilityInput) Err() error {
	if errs := in.Errors(); len(errs) > 0 {
		return domain.NewValidationError(errs)
	}
	return nil
}

// Name returns the sanitized facility name and whether it was provided.
func (in *FacilityInput) Name() (string, bool) {
	return in.name.Value(FieldName), in.name.Provided(FieldName)
}

// Location returns the full location for a create.
func (in *FacilityInput) Location() domain.Location {
	return LocationFromPatch(domain.Location{}, in.location.Patch())
}

// LocationPatch returns only the provided location fields, or an empty map
// when the location object itself was absent.
func (in *FacilityInput) LocationPatch() map[string]string {
	if !in.locationProvided {
		return map[string]string{}
	}
	return in.location.Patch()
}

// LocationDiff is LocationPatch minus fields equal to current.
func (in *FacilityInput) LocationDiff(current domain.Location) map[string]string {
	if !in.locationProvided {
		return map[string]string{}
	}
	return in.location.Diff(LocationFields(current))
}

// Tags returns the sanitized, de-duplicated tag names.
func (in *FacilityInput) Tags() []string { return in.tags }

// TagsProvided reports whether the payload carried a tags key.
func (in *FacilityInput) TagsProvided() bool { return in.tagsProvided }
