package service

import (
	"regexp"
)

// FieldErrors carries field-level validation failures detected before any
// write is attempted.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	return "validation failed"
}

func newFieldErrors() *FieldErrors {
	return &FieldErrors{Fields: make(map[string]string)}
}

func (e *FieldErrors) add(field, message string) {
	e.Fields[field] = message
}

func (e *FieldErrors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// isValidEmail accepts the empty string; an absent email is not an error.
func isValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}
