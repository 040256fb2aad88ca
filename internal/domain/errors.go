package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownIndustry  = errors.New("unknown industry")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrSnapshotNotFound = errors.New("no stored analysis for session")
	ErrMetricsRequired  = errors.New("metrics or session required")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InputError is returned when a profile fails validation. No metrics are
// produced when it is returned.
type InputError struct {
	Fields []FieldError `json:"fields"`
}

func (e *InputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(names, "; ")
}

// Add records a rejected field.
func (e *InputError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasField reports whether field was rejected.
func (e *InputError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no field was rejected.
func (e *InputError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
