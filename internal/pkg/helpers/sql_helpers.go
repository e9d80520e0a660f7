package helpers

import "strings"

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizeName trims surrounding whitespace from a user-supplied name.
// Case-insensitive uniqueness is enforced by the database, so only
// whitespace is normalized here.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}
