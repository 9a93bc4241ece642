package cache

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-notes/store"
)

// Kind is the closed set of failure classes reported by the Gateway.
type Kind int

const (
	// KindUnavailable covers query, write and connectivity failures.
	KindUnavailable Kind = iota
	// KindNotFound means the targeted note does not exist.
	KindNotFound
	// KindConflict means the store refused the write.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "unavailable"
	}
}

// Targets for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotFound    = errors.New("cache: note not found")
	ErrConflict    = errors.New("cache: conflict")
	ErrUnavailable = errors.New("cache: store unavailable")
)

// Error is the normalized failure returned by every Gateway operation.
// Err keeps the underlying store error.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// Category maps the kind onto the shared error categories.
func (e *Error) Category() goerrors.Category {
	switch e.Kind {
	case KindNotFound:
		return goerrors.CategoryNotFound
	case KindConflict:
		return goerrors.CategoryConflict
	default:
		return goerrors.CategoryExternal
	}
}

// KindOf reports the kind of err, or false when err is not a gateway error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnavailable, false
}

func normalize(op string, err error) error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	kind := KindUnavailable
	switch {
	case errors.Is(err, store.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, store.ErrConstraint):
		kind = KindConflict
	}
	return &Error{Op: op, Kind: kind, Err: err}
}
