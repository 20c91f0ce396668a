package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateRunID checks that id is a canonical UUID string as issued by the
// run store. It rejects anything that could be used for key or path injection.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "run id contains invalid control characters")
		}
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid run id %q", id)
	}
	if parsed.String() != strings.ToLower(id) {
		return New(ErrCodeInvalidInput, "run id must be in canonical form: %q", id)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values for the named option.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeConfiguration, "%s must be finite, got %v", name, v)
	}
	return nil
}
