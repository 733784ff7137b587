package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/airline-booking/internal/utils"
)

// ErrIDLockTimeout is returned when the allocation lock for a table could
// not be acquired within the configured timeout.
var ErrIDLockTimeout = errors.New("timed out waiting for id allocation lock")

// allocatedTables lists the tables whose primary keys are handed out by
// IDAllocator rather than AUTO_INCREMENT.
var allocatedTables = map[string]bool{
    "routes":  true,
    "crews":   true,
    "flights": true,
}

// InsertFunc performs the insert that claims id.  It must use tx so that
// the row becomes visible only when the allocator commits.
type InsertFunc func(ctx context.Context, tx *sql.Tx, id uint64) error

// IDAllocator assigns the smallest unused positive id of a table.  The
// scan of existing ids, the insert and the commit all happen while a MySQL
// advisory lock named after the table is held on a dedicated connection,
// so two concurrent creators can never pick the same id.  The primary key
// still rejects duplicates should a writer bypass the allocator.
type IDAllocator struct {
    db          *sql.DB
    lockTimeout time.Duration
}

// NewIDAllocator returns an allocator that waits at most lockTimeout for
// the per-table lock.
func NewIDAllocator(db *sql.DB, lockTimeout time.Duration) *IDAllocator {
    if lockTimeout <= 0 {
        lockTimeout = 5 * time.Second
    }
    return &IDAllocator{db: db, lockTimeout: lockTimeout}
}

// Insert allocates the next free id of table and passes it to insert inside
// a transaction.  It returns the id once the transaction has committed.
func (a *IDAllocator) Insert(ctx context.Context, table string, insert InsertFunc) (uint64, error) {
    if !allocatedTables[table] {
        return 0, fmt.Errorf("id allocation not supported for table %q", table)
    }
    conn, err := a.db.Conn(ctx)
    if err != nil {
        return 0, fmt.Errorf("acquire connection: %w", err)
    }
    defer conn.Close()

    lockName := "idalloc:" + table
    var locked sql.NullInt64
    if err := conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, ?)`, lockName, a.lockTimeout.Seconds()).Scan(&locked); err != nil {
        return 0, fmt.Errorf("get lock %s: %w", lockName, err)
    }
    if !locked.Valid || locked.Int64 != 1 {
        return 0, ErrIDLockTimeout
    }
    // The lock belongs to the session, not the transaction: release it on
    // the same connection after the transaction has finished either way.
    defer func() {
        var released sql.NullInt64
        _ = conn.QueryRowContext(context.Background(), `SELECT RELEASE_LOCK(?)`, lockName).Scan(&released)
    }()

    tx, err := conn.BeginTx(ctx, nil)
    if err != nil {
        return 0, fmt.Errorf("begin: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    used, err := scanIDs(ctx, tx, `SELECT id FROM `+table)
    if err != nil {
        return 0, fmt.Errorf("scan %s ids: %w", table, err)
    }
    id := utils.NextFreeID(used)
    if err := insert(ctx, tx, id); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, fmt.Errorf("commit: %w", err)
    }
    committed = true
    return id, nil
}

// scanIDs runs a single-column id query and collects the values.
func scanIDs(ctx context.Context, q interface {
    QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}, query string, args ...any) ([]uint64, error) {
    rows, err := q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}
