package validator

import (
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Required appends a "<field> is required" error when value is blank.
func (v *ValidationErrors) Required(field, value string) {
	if IsEmpty(value) {
		*v = append(*v, ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}
}

// Err returns v as an error, or nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Atoi parses a non-negative decimal query value such as a year or month.
func Atoi(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
