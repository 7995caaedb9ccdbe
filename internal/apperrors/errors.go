package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota
	NotFound
	Dependency
	Integrity
	Persistence
)

// Error is the service-wide error shape. Reason is a short machine-stable
// string safe to echo to clients; Err holds internal detail for logs only.
type Error struct {
	Kind   Kind
	Reason string
	Op     string
	Table  string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Reason, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Wrap(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// PersistenceOp tags a store failure with the operation and table it hit.
func PersistenceOp(op, table string, err error) *Error {
	return &Error{Kind: Persistence, Reason: "persistence_failure", Op: op, Table: table, Err: err}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return "internal_error"
}

func StatusOf(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case Validation, Dependency:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
