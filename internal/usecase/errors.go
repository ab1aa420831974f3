package usecase

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError collects human readable messages per request field.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Fields map[string][]string
	order  []string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// FieldNames returns fields in the order their first message was added.
func (e *ValidationError) FieldNames() []string {
	if e == nil {
		return nil
	}
	if len(e.order) == len(e.Fields) {
		return append([]string(nil), e.order...)
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Message is the first message recorded, with a count of the remaining ones.
func (e *ValidationError) Message() string {
	names := e.FieldNames()
	if len(names) == 0 {
		return "The given data was invalid."
	}

	first := e.Fields[names[0]][0]
	rest := -1
	for _, name := range names {
		rest += len(e.Fields[name])
	}
	switch rest {
	case 0:
		return first
	case 1:
		return first + " (and 1 more error)"
	default:
		return first + " (and " + strconv.Itoa(rest) + " more errors)"
	}
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
