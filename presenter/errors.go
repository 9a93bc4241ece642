package presenter

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"
)

// categorized is implemented by errors that carry a shared error category,
// such as the gateway's *cache.Error.
type categorized interface {
	error
	Category() goerrors.Category
}

// categoryOf returns the category carried by err, if any.
func categoryOf(err error) (goerrors.Category, bool) {
	var c categorized
	if errors.As(err, &c) {
		return c.Category(), true
	}
	var zero goerrors.Category
	return zero, false
}

// Message turns err into the text shown under an error title. Categorized
// failures are prefixed with a short explanation of what went wrong.
func Message(err error) string {
	category, ok := categoryOf(err)
	if !ok {
		return err.Error()
	}

	switch category {
	case goerrors.CategoryNotFound:
		return "the note no longer exists (" + err.Error() + ")"
	case goerrors.CategoryConflict:
		return "the change was refused (" + err.Error() + ")"
	case goerrors.CategoryExternal:
		return "the note store is unavailable (" + err.Error() + ")"
	default:
		return err.Error()
	}
}

func errorFields(op string, err error) []zap.Field {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if category, ok := categoryOf(err); ok {
		fields = append(fields, zap.Any("category", category))
	}
	return fields
}
