package errors

import (
	"strings"
	"unicode"
)

// maxEnvelopeIDLength bounds ids written into the envelope wrapper.
const maxEnvelopeIDLength = 128

// ValidateEnvelopeID validates an id before it is written into an envelope.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No markup delimiters (< > & and quotes)
//   - Maximum length of 128 bytes
func ValidateEnvelopeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "envelope id cannot be empty")
	}

	if len(id) > maxEnvelopeIDLength {
		return New(ErrCodeInvalidInput, "envelope id too long (max %d characters)", maxEnvelopeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "envelope id contains whitespace or control characters")
		}
	}

	if i := strings.IndexAny(id, `<>&"'`); i >= 0 {
		return New(ErrCodeInvalidInput, "envelope id contains invalid character: %q", id[i])
	}

	return nil
}

// ValidateFormatName checks a user-supplied document format name against the
// set of formats the caller accepts.
func ValidateFormatName(name string, valid ...string) error {
	for _, v := range valid {
		if name == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", name, strings.Join(valid, ", "))
}
