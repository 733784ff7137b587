package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-booking/internal/model"
)

// AircraftRepo manages aircraft types and aircraft.  Both are keyed by
// natural codes supplied by the caller (WTC letter, aircraft code), so
// inserts report an existing key as ErrConflict.
type AircraftRepo struct {
    db *sql.DB
}

// NewAircraftRepo returns a new AircraftRepo bound to the given database.
func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{db: db} }

// ListTypes returns all aircraft types ordered by WTC code.
func (r *AircraftRepo) ListTypes(ctx context.Context) ([]model.AircraftType, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT wtc, name FROM aircraft_types ORDER BY wtc`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.AircraftType, 0)
    for rows.Next() {
        var t model.AircraftType
        if err := rows.Scan(&t.WTC, &t.Name); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// GetType returns the aircraft type with the given WTC code or ErrNotFound.
func (r *AircraftRepo) GetType(ctx context.Context, wtc string) (*model.AircraftType, error) {
    var t model.AircraftType
    err := r.db.QueryRowContext(ctx, `SELECT wtc, name FROM aircraft_types WHERE wtc = ?`, wtc).Scan(&t.WTC, &t.Name)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// CreateType inserts an aircraft type.  An existing WTC code or name
// yields ErrConflict.
func (r *AircraftRepo) CreateType(ctx context.Context, t *model.AircraftType) error {
    _, err := r.db.ExecContext(ctx, `INSERT INTO aircraft_types (wtc, name) VALUES (?, ?)`, t.WTC, t.Name)
    return translate(err)
}

// UpdateType renames the aircraft type identified by wtc.
func (r *AircraftRepo) UpdateType(ctx context.Context, wtc string, t *model.AircraftType) error {
    res, err := r.db.ExecContext(ctx, `UPDATE aircraft_types SET wtc = ?, name = ? WHERE wtc = ?`, t.WTC, t.Name, wtc)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}

// DeleteType removes an aircraft type.  Types still referenced by
// aircraft yield ErrConflict.
func (r *AircraftRepo) DeleteType(ctx context.Context, wtc string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM aircraft_types WHERE wtc = ?`, wtc)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}

const aircraftColumns = `a.aircraft_code, a.model, a.flight_range, a.seat_rows, a.seats_in_row, a.aircraft_type_wtc, COALESCE(t.name, '')`

// List returns all aircraft with their type name.
func (r *AircraftRepo) List(ctx context.Context) ([]model.Aircraft, error) {
    q := `SELECT ` + aircraftColumns + `
          FROM aircraft a
          LEFT JOIN aircraft_types t ON t.wtc = a.aircraft_type_wtc
          ORDER BY a.aircraft_code`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Aircraft, 0)
    for rows.Next() {
        var a model.Aircraft
        if err := rows.Scan(&a.Code, &a.Model, &a.Range, &a.SeatRows, &a.SeatsInRow, &a.AircraftTypeWTC, &a.AircraftType); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// Get returns the aircraft with the given code or ErrNotFound.
func (r *AircraftRepo) Get(ctx context.Context, code string) (*model.Aircraft, error) {
    q := `SELECT ` + aircraftColumns + `
          FROM aircraft a
          LEFT JOIN aircraft_types t ON t.wtc = a.aircraft_type_wtc
          WHERE a.aircraft_code = ?`
    var a model.Aircraft
    err := r.db.QueryRowContext(ctx, q, code).Scan(&a.Code, &a.Model, &a.Range, &a.SeatRows, &a.SeatsInRow, &a.AircraftTypeWTC, &a.AircraftType)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &a, nil
}

// Create inserts an aircraft.  An existing code or model yields
// ErrConflict; an unknown aircraft type yields ErrNotFound.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
    const q = `INSERT INTO aircraft (aircraft_code, model, flight_range, seat_rows, seats_in_row, aircraft_type_wtc)
               VALUES (?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, a.Code, a.Model, a.Range, a.SeatRows, a.SeatsInRow, a.AircraftTypeWTC)
    return translate(err)
}

// Update overwrites every mutable column of the aircraft identified by
// code.  Shrinking the seat grid does not touch tickets already sold.
func (r *AircraftRepo) Update(ctx context.Context, code string, a *model.Aircraft) error {
    const q = `UPDATE aircraft
               SET aircraft_code = ?, model = ?, flight_range = ?, seat_rows = ?, seats_in_row = ?, aircraft_type_wtc = ?
               WHERE aircraft_code = ?`
    res, err := r.db.ExecContext(ctx, q, a.Code, a.Model, a.Range, a.SeatRows, a.SeatsInRow, a.AircraftTypeWTC, code)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}

// Delete removes an aircraft.  Aircraft still assigned to flights yield
// ErrConflict.
func (r *AircraftRepo) Delete(ctx context.Context, code string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM aircraft WHERE aircraft_code = ?`, code)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}
