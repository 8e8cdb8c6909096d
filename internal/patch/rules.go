package patch

import (
	"strings"

	"github.com/pkordes/catering-api/internal/domain"
)

// Field names shared by the JSON payloads and the patch maps.
const (
	FieldName        = "name"
	FieldCity        = "city"
	FieldAddress     = "address"
	FieldZipCode     = "zip_code"
	FieldCountryCode = "country_code"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPosition    = "position"
	FieldLocation    = "location"
	FieldTags        = "tags"
)

// LocationRules validate a location payload.
var LocationRules = []Rule{
	{Field: FieldCity, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
	{Field: FieldAddress, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
	{Field: FieldZipCode, CreateCode: domain.CodeInvalidZipCode, UpdateCode: domain.CodeInvalidZipCode, Valid: ZipCode, Sanitize: CompactUpper},
	{Field: FieldCountryCode, CreateCode: domain.CodeInvalidCountryCode, UpdateCode: domain.CodeInvalidCountryCode, Valid: CountryCode, Sanitize: Upper},
	{Field: FieldPhoneNumber, CreateCode: domain.CodeInvalidPhone, UpdateCode: domain.CodeInvalidPhone, Valid: Phone, Sanitize: PhoneDigits},
}

// facilityLocationRules differ from LocationRules only in the create code
// for city, which facilities have always reported as cannot_be_empty.
var facilityLocationRules = func() []Rule {
	rules := append([]Rule(nil), LocationRules...)
	rules[0].CreateCode = domain.CodeCannotBeEmpty
	return rules
}()

// EmployeeRules validate an employee payload.
var EmployeeRules = []Rule{
	{Field: FieldName, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
	{Field: FieldEmail, CreateCode: domain.CodeInvalidEmail, UpdateCode: domain.CodeInvalidEmail, Valid: Email, Sanitize: Lower},
	{Field: FieldPhone, CreateCode: domain.CodeInvalidPhone, UpdateCode: domain.CodeInvalidPhone, Valid: Phone, Sanitize: PhoneDigits},
	{Field: FieldPosition, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
}

// TagRules validate a tag payload.
var TagRules = []Rule{
	{Field: FieldName, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
}

var facilityNameRules = []Rule{
	{Field: FieldName, CreateCode: domain.CodeRequired, UpdateCode: domain.CodeCannotBeEmpty, Valid: NotEmpty},
}

// LocationFromPatch maps a location patch onto l. Absent keys leave l untouched.
func LocationFromPatch(l domain.Location, p map[string]string) domain.Location {
	if v, ok := p[FieldCity]; ok {
		l.City = v
	}
	if v, ok := p[FieldAddress]; ok {
		l.Address = v
	}
	if v, ok := p[FieldZipCode]; ok {
		l.ZipCode = v
	}
	if v, ok := p[FieldCountryCode]; ok {
		l.CountryCode = v
	}
	if v, ok := p[FieldPhoneNumber]; ok {
		l.PhoneNumber = v
	}
	return l
}

// LocationFields is the inverse of LocationFromPatch, used as Diff's baseline.
func LocationFields(l domain.Location) map[string]string {
	return map[string]string{
		FieldCity:        l.City,
		FieldAddress:     l.Address,
		FieldZipCode:     l.ZipCode,
		FieldCountryCode: l.CountryCode,
		FieldPhoneNumber: l.PhoneNumber,
	}
}

// EmployeeFromPatch maps an employee patch onto e.
func EmployeeFromPatch(e domain.Employee, p map[string]string) domain.Employee {
	if v, ok := p[FieldName]; ok {
		e.Name = v
	}
	if v, ok := p[FieldEmail]; ok {
		e.Email = v
	}
	if v, ok := p[FieldPhone]; ok {
		e.Phone = v
	}
	if v, ok := p[FieldPosition]; ok {
		e.Position = v
	}
	return e
}

// EmployeeFields returns e's patchable fields, used as Diff's baseline.
func EmployeeFields(e domain.Employee) map[string]string {
	return map[string]string{
		FieldName:     e.Name,
		FieldEmail:    e.Email,
		FieldPhone:    e.Phone,
		FieldPosition: e.Position,
	}
}

// TagName sanitizes a single tag name. ok is false when nothing is left.
func TagName(raw string) (name string, ok bool) {
	name = Text(raw)
	return name, NotEmpty(name)
}

// TagNames sanitizes a list of tag names, dropping blanks and case-insensitive
// duplicates. The first spelling of each name wins.
func TagNames(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name, ok := TagName(r)
		if !ok {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
