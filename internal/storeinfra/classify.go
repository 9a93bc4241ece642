package storeinfra

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// IsConstraintViolation reports whether err is a constraint failure raised by
// any of the supported drivers (primary key, unique, not null, check).
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.Code == sqlite3.ErrConstraint
	}

	var pureErr *sqlite.Error
	if errors.As(err, &pureErr) {
		return primaryCode(pureErr.Code()) == sqlitelib.SQLITE_CONSTRAINT
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		// Class 23: integrity constraint violation.
		return pgErr.Code.Class() == "23"
	}

	return false
}

// IsTransient reports whether err means the store is temporarily unreachable
// and the same operation may succeed later.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.Code == sqlite3.ErrBusy || cgoErr.Code == sqlite3.ErrLocked
	}

	var pureErr *sqlite.Error
	if errors.As(err, &pureErr) {
		code := primaryCode(pureErr.Code())
		return code == sqlitelib.SQLITE_BUSY || code == sqlitelib.SQLITE_LOCKED
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code.Class() {
		case "08", "53", "57":
			// connection exception, insufficient resources, operator intervention
			return true
		}
	}

	return false
}

// extended result codes carry the primary code in the low byte
func primaryCode(code int) int {
	return code & 0xff
}
