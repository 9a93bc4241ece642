package store

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("note not found")

	// ErrUnavailable marks failures caused by the store being temporarily
	// unreachable: a busy or locked engine, a dropped connection or a closed adapter.
	ErrUnavailable = errors.New("store unavailable")

	// ErrConstraint marks writes refused because the record breaks a rule:
	// a duplicate id, a missing required field or an invalid note.
	ErrConstraint = errors.New("constraint violation")
)

// QueryError is returned when a read cannot be executed or decoded.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return "store: " + e.Op + ": query failed: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a write could not be committed.
type WriteError struct {
	Op  string
	ID  uuid.UUID
	Err error
}

func (e *WriteError) Error() string {
	return "store: " + e.Op + " " + e.ID.String() + ": write failed: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a mutation or lookup targets an id with no record.
type NotFoundError struct {
	Op string
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return "store: " + e.Op + ": note " + e.ID.String() + " not found"
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
