package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Validator collects business-rule validation errors per field.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// First returns one error message for transport in the result envelope.
func (v *Validator) First() string {
	for field, msg := range v.Errors {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return ""
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Phone validates phone number format
func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid phone number")
}

// Required checks if a value is present and non-zero
func (v *Validator) Required(field string, value interface{}) {
	if value == nil {
		v.AddError(field, "must not be nil")
		return
	}

	switch val := value.(type) {
	case string:
		v.Check(strings.TrimSpace(val) != "", field, "must not be empty")
	case float64:
		v.Check(val != 0, field, "must not be zero")
	case int:
		v.Check(val != 0, field, "must not be zero")
	case uint:
		v.Check(val != 0, field, "must not be zero")
	}
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field string, value string, n int) {
	v.Check(len(strings.TrimSpace(value)) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Amount checks a monetary amount: strictly positive and finite.
func (v *Validator) Amount(field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.AddError(field, "must be a valid number")
		return
	}
	v.Check(value > 0, field, "must be greater than zero")
}

// HasSpecialChar reports whether the string contains at least one
// non-alphanumeric character.
func HasSpecialChar(s string) bool {
	return strings.ContainsAny(s, "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~")
}

// Date checks an ISO date string (YYYY-MM-DD). Empty is allowed since it
// clears a date-range filter.
func (v *Validator) Date(field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v.AddError(field, "must be an ISO date (YYYY-MM-DD)")
	}
}
