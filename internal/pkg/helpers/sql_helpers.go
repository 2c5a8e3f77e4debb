package helpers

import "strings"

// NullableString returns nil for blank strings so optional columns are stored as NULL.
func NullableString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringValue dereferences s, treating nil as the empty string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
