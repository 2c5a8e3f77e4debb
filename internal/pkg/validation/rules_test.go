package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckProgramField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  Reason
	}{
		{"name ok", FieldName, "Supply Chain", ReasonNone},
		{"name at limit", FieldName, strings.Repeat("a", 64), ReasonNone},
		{"name too long", FieldName, strings.Repeat("a", 65), ReasonTooLong},
		{"name empty", FieldName, "", ReasonRequired},
		{"name blank", FieldName, "   ", ReasonRequired},
		{"subtitle at limit", FieldSubtitle, strings.Repeat("s", 255), ReasonNone},
		{"subtitle too long", FieldSubtitle, strings.Repeat("s", 256), ReasonTooLong},
		{"slug too long", FieldMarketingSlug, strings.Repeat("m", 256), ReasonTooLong},
		{"slug empty", FieldMarketingSlug, "", ReasonRequired},
		{"multibyte counted as characters", FieldName, strings.Repeat("é", 64), ReasonNone},
		{"unknown field", "status", "", ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckProgramField(tt.field, tt.value))
		})
	}
}

func TestStringValidation_Optional(t *testing.T) {
	v := NewStringValidation("").WithRequired(false).WithMaxLength(3)
	assert.True(t, v.Validate())

	v = NewStringValidation("ab").WithMinLength(3)
	assert.Equal(t, ReasonTooShort, v.Check())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "marketing slug is required", Message(FieldMarketingSlug, ReasonRequired, 255))
	assert.Equal(t, "name must be at most 64 characters", Message(FieldName, ReasonTooLong, 64))
	assert.Empty(t, Message(FieldName, ReasonNone, 64))
}
