package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field limits for the catalog entities. Lengths are counted in characters, not bytes.
const (
	ProgramNameMaxLength          = 64
	ProgramSubtitleMaxLength      = 255
	ProgramMarketingSlugMaxLength = 255

	OrganizationKeyMaxLength         = 64
	OrganizationDisplayNameMaxLength = 128

	CourseCodeKeyMaxLength         = 64
	CourseCodeDisplayNameMaxLength = 128

	RunModeCourseKeyMaxLength = 255
	RunModeModeSlugMaxLength  = 64
	RunModeSKUMaxLength       = 255
)

// Reason describes why a value was rejected.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonRequired Reason = "required"
	ReasonTooShort Reason = "too_short"
	ReasonTooLong  Reason = "too_long"
	ReasonPattern  Reason = "pattern"
)

// StringValidation is a fluent set of checks applied to one string value.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a required string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Check returns the first failed rule, or ReasonNone. Whitespace-only values count as empty.
func (v *StringValidation) Check() Reason {
	empty := strings.TrimSpace(v.Value) == ""
	if empty {
		if v.Required {
			return ReasonRequired
		}
		return ReasonNone
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return ReasonTooShort
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return ReasonTooLong
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return ReasonPattern
	}
	return ReasonNone
}

// Validate reports whether every rule passes
func (v *StringValidation) Validate() bool {
	return v.Check() == ReasonNone
}

// Editable program attributes
const (
	FieldName          = "name"
	FieldSubtitle      = "subtitle"
	FieldMarketingSlug = "marketing_slug"
)

// ProgramFields lists the inline-editable program attributes in display order.
var ProgramFields = []string{FieldName, FieldSubtitle, FieldMarketingSlug}

// ProgramFieldMaxLength returns the bound for an editable program attribute.
func ProgramFieldMaxLength(field string) (int, bool) {
	switch field {
	case FieldName:
		return ProgramNameMaxLength, true
	case FieldSubtitle:
		return ProgramSubtitleMaxLength, true
	case FieldMarketingSlug:
		return ProgramMarketingSlugMaxLength, true
	}
	return 0, false
}

// CheckProgramField applies the required and length rules of an editable program attribute.
func CheckProgramField(field, value string) Reason {
	limit, ok := ProgramFieldMaxLength(field)
	if !ok {
		return ReasonNone
	}
	return NewStringValidation(value).WithMaxLength(limit).Check()
}

// Message renders a reason as user-facing text for field.
func Message(field string, reason Reason, maxLen int) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch reason {
	case ReasonRequired:
		return fmt.Sprintf("%s is required", label)
	case ReasonTooLong:
		return fmt.Sprintf("%s must be at most %d characters", label, maxLen)
	case ReasonTooShort:
		return fmt.Sprintf("%s is too short", label)
	case ReasonPattern:
		return fmt.Sprintf("%s has an invalid format", label)
	}
	return ""
}
