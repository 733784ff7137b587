package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/airline-booking/internal/model"
)

// AirportRepo manages airports and the routes between them.  Route ids are
// allocated by IDAllocator.
type AirportRepo struct {
    db    *sql.DB
    alloc *IDAllocator
}

// NewAirportRepo returns an AirportRepo.  alloc assigns route ids.
func NewAirportRepo(db *sql.DB, alloc *IDAllocator) *AirportRepo {
    return &AirportRepo{db: db, alloc: alloc}
}

// ListAirports returns all airports ordered by code.
func (r *AirportRepo) ListAirports(ctx context.Context) ([]model.Airport, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT airport_code, name, closest_big_city FROM airports ORDER BY airport_code`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Airport, 0)
    for rows.Next() {
        var a model.Airport
        if err := rows.Scan(&a.Code, &a.Name, &a.ClosestBigCity); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// GetAirport returns the airport with the given code or ErrNotFound.
func (r *AirportRepo) GetAirport(ctx context.Context, code string) (*model.Airport, error) {
    var a model.Airport
    err := r.db.QueryRowContext(ctx, `SELECT airport_code, name, closest_big_city FROM airports WHERE airport_code = ?`, code).
        Scan(&a.Code, &a.Name, &a.ClosestBigCity)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &a, nil
}

// CreateAirport inserts an airport; an existing code or name yields
// ErrConflict.
func (r *AirportRepo) CreateAirport(ctx context.Context, a *model.Airport) error {
    _, err := r.db.ExecContext(ctx, `INSERT INTO airports (airport_code, name, closest_big_city) VALUES (?, ?, ?)`,
        a.Code, a.Name, a.ClosestBigCity)
    return translate(err)
}

// UpdateAirport overwrites the airport identified by code.
func (r *AirportRepo) UpdateAirport(ctx context.Context, code string, a *model.Airport) error {
    res, err := r.db.ExecContext(ctx, `UPDATE airports SET airport_code = ?, name = ?, closest_big_city = ? WHERE airport_code = ?`,
        a.Code, a.Name, a.ClosestBigCity, code)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}

// DeleteAirport removes an airport.  Airports used by routes yield
// ErrConflict.
func (r *AirportRepo) DeleteAirport(ctx context.Context, code string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM airports WHERE airport_code = ?`, code)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}

// ListRoutes returns routes with airport names resolved, optionally
// filtered by source and/or destination airport code.  Empty filters are
// ignored.
func (r *AirportRepo) ListRoutes(ctx context.Context, source, destination string) ([]model.RouteView, error) {
    q := `SELECT r.id, r.distance, s.name, d.name
          FROM routes r
          JOIN airports s ON s.airport_code = r.source_airport_code
          JOIN airports d ON d.airport_code = r.destination_airport_code`
    var where []string
    var args []any
    if source != "" {
        where = append(where, "r.source_airport_code = ?")
        args = append(args, source)
    }
    if destination != "" {
        where = append(where, "r.destination_airport_code = ?")
        args = append(args, destination)
    }
    if len(where) > 0 {
        q += " WHERE " + strings.Join(where, " AND ")
    }
    q += " ORDER BY r.id"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.RouteView, 0)
    for rows.Next() {
        var v model.RouteView
        if err := rows.Scan(&v.ID, &v.Distance, &v.Source, &v.Destination); err != nil {
            return nil, err
        }
        out = append(out, v)
    }
    return out, rows.Err()
}

// GetRoute returns the route with the given id or ErrNotFound.
func (r *AirportRepo) GetRoute(ctx context.Context, id uint64) (*model.Route, error) {
    var rt model.Route
    err := r.db.QueryRowContext(ctx,
        `SELECT id, distance, source_airport_code, destination_airport_code FROM routes WHERE id = ?`, id).
        Scan(&rt.ID, &rt.Distance, &rt.SourceAirportCode, &rt.DestinationAirportCode)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &rt, nil
}

// CreateRoute inserts a route under the smallest free id and stores the id
// on rt.  A route with the same source and destination yields ErrConflict;
// an unknown airport yields ErrNotFound.
func (r *AirportRepo) CreateRoute(ctx context.Context, rt *model.Route) error {
    id, err := r.alloc.Insert(ctx, "routes", func(ctx context.Context, tx *sql.Tx, id uint64) error {
        const q = `INSERT INTO routes (id, distance, source_airport_code, destination_airport_code) VALUES (?, ?, ?, ?)`
        _, err := tx.ExecContext(ctx, q, id, rt.Distance, rt.SourceAirportCode, rt.DestinationAirportCode)
        return translate(err)
    })
    if err != nil {
        return err
    }
    rt.ID = id
    return nil
}

// UpdateRoute overwrites distance and endpoints of the route with the
// given id.
func (r *AirportRepo) UpdateRoute(ctx context.Context, id uint64, rt *model.Route) error {
    const q = `UPDATE routes SET distance = ?, source_airport_code = ?, destination_airport_code = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, rt.Distance, rt.SourceAirportCode, rt.DestinationAirportCode, id)
    if err != nil {
        return translate(err)
    }
    if err := requireAffected(res); err != nil {
        return err
    }
    rt.ID = id
    return nil
}

// DeleteRoute removes a route; routes with flights yield ErrConflict.
func (r *AirportRepo) DeleteRoute(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
    if err != nil {
        return translate(err)
    }
    return requireAffected(res)
}
