package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"

    "github.com/iliyamo/airline-booking/internal/model"
)

// FlightRepo manages flights and their crew assignments.  Flight ids are
// allocated by IDAllocator.  SeatLayoutTx is the read used by order
// placement to validate requested seats.
type FlightRepo struct {
    db    *sql.DB
    alloc *IDAllocator
}

// NewFlightRepo returns a FlightRepo.
func NewFlightRepo(db *sql.DB, alloc *IDAllocator) *FlightRepo {
    return &FlightRepo{db: db, alloc: alloc}
}

// SeatLayoutTx returns the seat grid of the aircraft flying flightID.  It
// runs inside the caller's transaction.  An unknown flight yields
// ErrNotFound.
func (r *FlightRepo) SeatLayoutTx(ctx context.Context, tx *sql.Tx, flightID uint64) (model.SeatLayout, error) {
    const q = `SELECT a.seat_rows, a.seats_in_row
               FROM flights f
               JOIN aircraft a ON a.aircraft_code = f.aircraft_code
               WHERE f.id = ?`
    var l model.SeatLayout
    err := tx.QueryRowContext(ctx, q, flightID).Scan(&l.Rows, &l.SeatsInRow)
    if errors.Is(err, sql.ErrNoRows) {
        return model.SeatLayout{}, ErrNotFound
    }
    if err != nil {
        return model.SeatLayout{}, err
    }
    return l, nil
}

// List returns every flight ordered by departure time together with the
// number of unsold seats and the assigned crew.
func (r *FlightRepo) List(ctx context.Context) ([]model.FlightSummary, error) {
    const q = `SELECT f.id, f.route_id, a.model, f.departure_time, f.arrival_time,
                      a.seat_rows * a.seats_in_row - COUNT(t.id)
               FROM flights f
               JOIN aircraft a ON a.aircraft_code = f.aircraft_code
               LEFT JOIN tickets t ON t.flight_id = f.id
               GROUP BY f.id, f.route_id, a.model, f.departure_time, f.arrival_time, a.seat_rows, a.seats_in_row
               ORDER BY f.departure_time, f.id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.FlightSummary, 0)
    for rows.Next() {
        var s model.FlightSummary
        if err := rows.Scan(&s.ID, &s.RouteID, &s.Aircraft, &s.DepartureTime, &s.ArrivalTime, &s.TicketsAvailable); err != nil {
            return nil, err
        }
        s.Crews = []model.Crew{}
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }
    crews, err := r.crewsByFlight(ctx, r.db)
    if err != nil {
        return nil, err
    }
    for i := range out {
        if c, ok := crews[out[i].ID]; ok {
            out[i].Crews = c
        }
    }
    return out, nil
}

// Get returns a flight with its crew or ErrNotFound.
func (r *FlightRepo) Get(ctx context.Context, id uint64) (*model.FlightDetail, error) {
    const q = `SELECT f.id, f.route_id, a.model, f.departure_time, f.arrival_time
               FROM flights f
               JOIN aircraft a ON a.aircraft_code = f.aircraft_code
               WHERE f.id = ?`
    var d model.FlightDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.RouteID, &d.Aircraft, &d.DepartureTime, &d.ArrivalTime)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    crews, err := r.crewsByFlight(ctx, r.db, id)
    if err != nil {
        return nil, err
    }
    d.Crews = crews[id]
    if d.Crews == nil {
        d.Crews = []model.Crew{}
    }
    return &d, nil
}

// Create inserts a flight under the smallest free id together with its
// crew assignments.  Unknown routes, aircraft or crew members yield
// ErrNotFound.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
    id, err := r.alloc.Insert(ctx, "flights", func(ctx context.Context, tx *sql.Tx, id uint64) error {
        const q = `INSERT INTO flights (id, route_id, aircraft_code, departure_time, arrival_time) VALUES (?, ?, ?, ?, ?)`
        if _, err := tx.ExecContext(ctx, q, id, f.RouteID, f.AircraftCode, f.DepartureTime, f.ArrivalTime); err != nil {
            return translate(err)
        }
        return insertCrewsTx(ctx, tx, id, f.CrewIDs)
    })
    if err != nil {
        return err
    }
    f.ID = id
    return nil
}

// Update overwrites route, aircraft and schedule of a flight and replaces
// its crew assignments.  Only the listed columns are written.
func (r *FlightRepo) Update(ctx context.Context, id uint64, f *model.Flight) error {
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

    const q = `UPDATE flights SET route_id = ?, aircraft_code = ?, departure_time = ?, arrival_time = ? WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, f.RouteID, f.AircraftCode, f.DepartureTime, f.ArrivalTime, id)
    if err != nil {
        return translate(err)
    }
    if err := requireAffected(res); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crews WHERE flight_id = ?`, id); err != nil {
        return err
    }
    if err := insertCrewsTx(ctx, tx, id, f.CrewIDs); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    f.ID = id
    return nil
}

// Delete removes a flight and its crew assignments.  Flights with sold
// tickets yield ErrConflict.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
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
    if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crews WHERE flight_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
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

// insertCrewsTx assigns crewIDs to flightID with one multi-row insert.
// Repeated ids are collapsed.
func insertCrewsTx(ctx context.Context, tx *sql.Tx, flightID uint64, crewIDs []uint64) error {
    if len(crewIDs) == 0 {
        return nil
    }
    seen := make(map[uint64]bool, len(crewIDs))
    var sb strings.Builder
    sb.WriteString(`INSERT INTO flight_crews (flight_id, crew_id) VALUES `)
    args := make([]any, 0, len(crewIDs)*2)
    for _, cid := range crewIDs {
        if seen[cid] {
            continue
        }
        seen[cid] = true
        if len(args) > 0 {
            sb.WriteString(",")
        }
        sb.WriteString("(?, ?)")
        args = append(args, flightID, cid)
    }
    if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
        if IsMissingReference(err) {
            return fmt.Errorf("%w: %v", ErrCrewNotFound, err)
        }
        return translate(err)
    }
    return nil
}

// crewsByFlight loads crew assignments grouped by flight.  With ids it is
// restricted to those flights.
func (r *FlightRepo) crewsByFlight(ctx context.Context, q interface {
    QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}, ids ...uint64) (map[uint64][]model.Crew, error) {
    query := `SELECT fc.flight_id, c.id, c.first_name, c.last_name
              FROM flight_crews fc
              JOIN crews c ON c.id = fc.crew_id`
    args := make([]any, 0, len(ids))
    if len(ids) > 0 {
        query += " WHERE fc.flight_id IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
        for _, id := range ids {
            args = append(args, id)
        }
    }
    query += " ORDER BY fc.flight_id, c.id"
    rows, err := q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64][]model.Crew)
    for rows.Next() {
        var fid uint64
        var c model.Crew
        if err := rows.Scan(&fid, &c.ID, &c.FirstName, &c.LastName); err != nil {
            return nil, err
        }
        out[fid] = append(out[fid], c)
    }
    return out, rows.Err()
}
