// Package validation provides declarative request validation rules.
//
// Each route declares an ordered list of rules; Run evaluates every rule
// and collects all failures so a response can report the full error list.
package validation

import (
	"regexp"
	"strconv"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldError describes a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule pairs a predicate with the field it checks and the message reported
// when the predicate fails.
type Rule struct {
	Field   string
	Message string
	Valid   func() bool
}

// Run evaluates every rule in order and returns all failures. A nil result
// means the request passed validation.
func Run(rules ...Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if !r.Valid() {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// Required fails when value is empty.
func Required(field, value, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return value != ""
	}}
}

// OptionalNonEmpty passes when value is absent but rejects a present empty value.
func OptionalNonEmpty(field string, value *string, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return value == nil || *value != ""
	}}
}

// OneOf fails unless value matches one of allowed.
func OneOf(field, value string, allowed []string, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return contains(allowed, value)
	}}
}

// OptionalOneOf is OneOf for a value that may be absent.
func OptionalOneOf(field string, value *string, allowed []string, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return value == nil || contains(allowed, *value)
	}}
}

// Email fails unless value has valid email syntax.
func Email(field, value, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return emailRegex.MatchString(value)
	}}
}

// MinLength fails when value is shorter than min bytes.
func MinLength(field, value string, min int, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		return len(value) >= min
	}}
}

// IntParam fails unless the raw path parameter parses as an integer.
func IntParam(field, raw, message string) Rule {
	return Rule{Field: field, Message: message, Valid: func() bool {
		_, err := strconv.Atoi(raw)
		return err == nil
	}}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
