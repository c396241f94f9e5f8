package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/jappaper/pkg/page"
)

// ValidateTemplateID validates a template identifier for safety.
// Identifiers become file names in the file store and URL path segments in
// the API, so they are held to a conservative character set:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateTemplateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "template id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "template id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "template id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "template id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateHexColor validates a colour written as #rgb or #rrggbb. field names
// the setting in the error message.
func ValidateHexColor(field, value string) error {
	if !page.IsHexColor(value) {
		return New(ErrCodeInvalidTemplate, "%s: invalid colour %q (want #rgb or #rrggbb)", field, value)
	}
	return nil
}

// ValidateOneOf validates that value is one of allowed.
func ValidateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidTemplate, "%s: invalid value %q (must be one of: %s)",
		field, value, strings.Join(allowed, ", "))
}
