package patch

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// getValidator returns the shared validator instance. validator.Validate
// caches struct metadata and is safe for concurrent use.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Error is impossible here: the tag is non-empty and fn is non-nil.
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func check(value, tag string) bool {
	return getValidator().Var(value, tag) == nil
}

// NotEmpty reports whether s has any non-whitespace content.
func NotEmpty(s string) bool { return check(strings.TrimSpace(s), "required") }

// Email reports whether s is a syntactically valid address.
func Email(s string) bool { return check(s, "required,email") }

// Phone accepts an optional leading '+' followed by 8 to 15 digits.
func Phone(s string) bool { return check(s, "phone") }

// CountryCode accepts exactly two upper-case ASCII letters.
func CountryCode(s string) bool { return check(s, "len=2,alpha,uppercase") }

// ZipCode only requires a non-blank value; formats vary per country.
func ZipCode(s string) bool { return NotEmpty(s) }

// Upper is Text followed by upper-casing.
func Upper(s string) string { return strings.ToUpper(Text(s)) }

// Lower is Text followed by lower-casing.
func Lower(s string) string { return strings.ToLower(Text(s)) }

// CompactUpper removes all whitespace and upper-cases; used for zip codes.
func CompactUpper(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(Text(s)), ""))
}

// PhoneDigits keeps digits and a leading '+'.
func PhoneDigits(s string) string {
	s = Text(s)
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Text strips HTML tags and surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
