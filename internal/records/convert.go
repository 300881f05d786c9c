package records

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyField is returned when a numeric field holds the empty "missing" sentinel.
var ErrEmptyField = errors.New("field is empty")

// ParseYear converts an integer-valued year string. Surrounding whitespace is
// ignored. The field name is only used in error messages.
func ParseYear(field, value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, fmt.Errorf("%s: %w", field, ErrEmptyField)
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid year %q: %w", field, value, err)
	}
	return year, nil
}
