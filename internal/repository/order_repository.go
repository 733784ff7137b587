package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-booking/internal/model"
)

// OrderRepo stores orders and the tickets sold under them.  Writes happen
// only inside the transaction opened by order placement; reads serve the
// customer's order history.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateTx inserts a new order for userID within tx and returns it with
// the id and created_at assigned by the database.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64) (*model.Order, error) {
    res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
    if err != nil {
        return nil, translate(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    // Read back the row so created_at is the stored value.
    var o model.Order
    err = tx.QueryRowContext(ctx, `SELECT id, user_id, created_at FROM orders WHERE id = ?`, id).
        Scan(&o.ID, &o.UserID, &o.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &o, nil
}

// CreateTicketTx inserts one ticket within tx and stores the generated id
// on t.  A seat already sold on the flight yields ErrConflict.
func (r *OrderRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
    const q = `INSERT INTO tickets (seat_row, seat, flight_id, order_id) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, t.Row, t.Seat, t.FlightID, t.OrderID)
    if err != nil {
        return translate(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// ListByUser returns the user's orders, newest first, each with its
// tickets in insertion order.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.OrderView, error) {
    const q = `SELECT o.id, o.user_id, o.created_at, t.seat_row, t.seat, t.flight_id
               FROM orders o
               LEFT JOIN tickets t ON t.order_id = o.id
               WHERE o.user_id = ?
               ORDER BY o.created_at DESC, o.id DESC, t.id`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.OrderView, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var v model.OrderView
        var row, seat sql.NullInt64
        var flight sql.NullInt64
        if err := rows.Scan(&v.OrderID, &v.UserID, &v.CreatedAt, &row, &seat, &flight); err != nil {
            return nil, err
        }
        i, ok := index[v.OrderID]
        if !ok {
            v.Tickets = []model.TicketView{}
            out = append(out, v)
            i = len(out) - 1
            index[v.OrderID] = i
        }
        if row.Valid {
            out[i].Tickets = append(out[i].Tickets, model.TicketView{
                Row: int(row.Int64), Seat: int(seat.Int64), Flight: uint64(flight.Int64),
            })
        }
    }
    return out, rows.Err()
}

// GetByIDForUser returns a single order owned by userID.  Orders that do
// not exist or belong to someone else both yield ErrNotFound.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*model.OrderView, error) {
    var v model.OrderView
    err := r.db.QueryRowContext(ctx,
        `SELECT id, user_id, created_at FROM orders WHERE id = ? AND user_id = ?`, orderID, userID).
        Scan(&v.OrderID, &v.UserID, &v.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT seat_row, seat, flight_id FROM tickets WHERE order_id = ? ORDER BY id`, orderID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    v.Tickets = []model.TicketView{}
    for rows.Next() {
        var t model.TicketView
        if err := rows.Scan(&t.Row, &t.Seat, &t.Flight); err != nil {
            return nil, err
        }
        v.Tickets = append(v.Tickets, t)
    }
    return &v, rows.Err()
}
