// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the order service to distinguish between failure scenarios
// without inspecting driver errors themselves.
package repository

import (
    "errors"
    "fmt"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a row addressed by its key does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update would violate a unique
// key (an existing airport code, a duplicate route, a seat already sold).
// Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrCrewNotFound is returned when a flight lists a crew member that does
// not exist.  It matches ErrNotFound.
var ErrCrewNotFound = fmt.Errorf("crew %w", ErrNotFound)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// mysqlRowReferenced is ER_ROW_IS_REFERENCED_2, raised when deleting a row
// that other rows still point at (an aircraft with flights, etc.).
const mysqlRowReferenced = 1451

// mysqlNoReferencedRow is ER_NO_REFERENCED_ROW_2, raised when a foreign
// key points at a row that does not exist.
const mysqlNoReferencedRow = 1452

// IsDuplicateEntry reports whether err is a unique-key violation.
func IsDuplicateEntry(err error) bool { return mysqlErrNumber(err) == mysqlDuplicateEntry }

// IsRowReferenced reports whether err is a foreign-key violation caused by
// deleting a referenced row.
func IsRowReferenced(err error) bool { return mysqlErrNumber(err) == mysqlRowReferenced }

// IsMissingReference reports whether err is a foreign-key violation caused
// by referencing a row that does not exist.
func IsMissingReference(err error) bool { return mysqlErrNumber(err) == mysqlNoReferencedRow }

func mysqlErrNumber(err error) uint16 {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number
    }
    return 0
}

// translate wraps driver constraint errors with the package sentinels so
// callers can use errors.Is; anything else is returned unchanged.
func translate(err error) error {
    switch {
    case err == nil:
        return nil
    case IsDuplicateEntry(err), IsRowReferenced(err):
        return fmt.Errorf("%w: %v", ErrConflict, err)
    case IsMissingReference(err):
        return fmt.Errorf("%w: %v", ErrNotFound, err)
    }
    return err
}
