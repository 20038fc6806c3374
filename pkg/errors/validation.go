package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextSize bounds the notation text accepted by the CLI and API.
const MaxTextSize = 4 << 20

// MaxNameLength bounds stored graph names.
const MaxNameLength = 128

// ValidateGraphName validates a name for a stored graph.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators
//   - Maximum length of MaxNameLength characters
func ValidateGraphName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "graph name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "graph name cannot contain path separators")
	}

	return nil
}

// ValidateText checks notation input before parsing. Empty text is allowed
// and parses to an empty graph.
func ValidateText(text string) error {
	if len(text) > MaxTextSize {
		return New(ErrCodeInvalidInput, "input too large (max %d bytes)", MaxTextSize)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "input is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "input contains null bytes")
	}
	return nil
}
