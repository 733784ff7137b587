package repository

import "database/sql"

// requireAffected turns an UPDATE or DELETE that matched nothing into
// ErrNotFound.  The DSN sets clientFoundRows, so an UPDATE that leaves a
// row unchanged still counts it.
func requireAffected(res sql.Result) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}
