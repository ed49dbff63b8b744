package validator

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
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

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Amount accepts 150000, 150000.50, or "150000" as a JSON value and keeps the
// raw text so that empty and malformed input can be reported per field.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

var amountRegex = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseAmount parses a non-negative rupiah amount. Thousands separators are
// not accepted.
func ParseAmount(field string, raw Amount) (decimal.Decimal, *ValidationError) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Zero, &ValidationError{Field: field, Message: field + " is required"}
	}
	if !amountRegex.MatchString(s) {
		return decimal.Zero, &ValidationError{Field: field, Message: field + " must be a number"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: field + " must be a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Message: field + " must not be negative"}
	}
	return d, nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
