package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-booking/internal/model"
)

// CrewRepo manages crew members.  Crew ids are allocated by IDAllocator.
type CrewRepo struct {
    db    *sql.DB
    alloc *IDAllocator
}

// NewCrewRepo returns a CrewRepo.
func NewCrewRepo(db *sql.DB, alloc *IDAllocator) *CrewRepo { return &CrewRepo{db: db, alloc: alloc} }

// List returns all crew members ordered by id.
func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Crew, 0)
    for rows.Next() {
        var c model.Crew
        if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Get returns the crew member with the given id or ErrNotFound.
func (r *CrewRepo) Get(ctx context.Context, id uint64) (*model.Crew, error) {
    var c model.Crew
    err := r.db.QueryRowContext(ctx, `SELECT id, first_name, last_name FROM crews WHERE id = ?`, id).
        Scan(&c.ID, &c.FirstName, &c.LastName)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// Create inserts a crew member under the smallest free id.  A duplicate
// first/last name pair yields ErrConflict.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
    id, err := r.alloc.Insert(ctx, "crews", func(ctx context.Context, tx *sql.Tx, id uint64) error {
        _, err := tx.ExecContext(ctx, `INSERT INTO crews (id, first_name, last_name) VALUES (?, ?, ?)`,
            id, c.FirstName, c.LastName)
        return translate(err)
    })
    if err != nil {
        return err
    }
    c.ID = id
    return nil
}

// Delete removes a crew member and its flight assignments.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crews WHERE crew_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM crews WHERE id = ?`, id)
    if err != nil {
        return translate(err)
    }
    if err := requireAffected(res); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
