package service

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/model"
    q "github.com/iliyamo/airline-booking/internal/queue"
    "github.com/iliyamo/airline-booking/internal/repository"
)

// TicketRequest is one requested seat of an order.
type TicketRequest struct {
    FlightID uint64 `json:"flight"`
    Row      int    `json:"row"`
    Seat     int    `json:"seat"`
}

// TxBeginner opens the transaction an order is placed in.  *sql.DB
// satisfies it.
type TxBeginner interface {
    BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// FlightLookup resolves the seat layout of a flight's aircraft.
type FlightLookup interface {
    SeatLayoutTx(ctx context.Context, tx *sql.Tx, flightID uint64) (model.SeatLayout, error)
}

// OrderWriter stores orders and tickets inside a transaction.
type OrderWriter interface {
    CreateTx(ctx context.Context, tx *sql.Tx, userID uint64) (*model.Order, error)
    CreateTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error
}

// EventPublisher announces committed orders.
type EventPublisher interface {
    PublishOrderPlaced(ctx context.Context, event q.OrderPlacedEvent) error
}

// publishTimeout bounds the asynchronous event publish after commit.
const publishTimeout = 10 * time.Second

// OrderService places orders.  Every order is created together with all
// of its tickets in one transaction: a missing flight, a seat outside the
// aircraft layout or a seat already sold voids the whole order.
type OrderService struct {
    db      TxBeginner
    flights FlightLookup
    orders  OrderWriter
    events  EventPublisher
    logger  *logrus.Logger
}

// NewOrderService wires an OrderService.  events may be nil, in which case
// no order.placed events are published.
func NewOrderService(db TxBeginner, flights FlightLookup, orders OrderWriter, events EventPublisher, logger *logrus.Logger) *OrderService {
    if logger == nil {
        logger = logrus.StandardLogger()
    }
    return &OrderService{db: db, flights: flights, orders: orders, events: events, logger: logger}
}

// PlaceOrder books tickets for userID.  Tickets are processed strictly in
// request order; the first failing ticket aborts the transaction and its
// error is returned as a *NotFoundError, *ValidationError or
// *ConflictError.  Store failures are wrapped and returned as is.  On
// success the returned view lists the tickets in request order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint64, reqs []TicketRequest) (*model.OrderView, error) {
    if len(reqs) == 0 {
        return nil, ErrEmptyOrder
    }
    log := s.logger.WithFields(logrus.Fields{"user_id": userID, "tickets": len(reqs)})

    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, fmt.Errorf("begin order tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    order, err := s.orders.CreateTx(ctx, tx, userID)
    if err != nil {
        return nil, fmt.Errorf("create order: %w", err)
    }

    view := &model.OrderView{
        OrderID:   order.ID,
        CreatedAt: order.CreatedAt,
        UserID:    order.UserID,
        Tickets:   make([]model.TicketView, 0, len(reqs)),
    }
    for i, r := range reqs {
        if err := s.placeTicket(ctx, tx, order.ID, r); err != nil {
            log.WithFields(logrus.Fields{
                "order_id": order.ID,
                "index":    i,
                "flight":   r.FlightID,
                "row":      r.Row,
                "seat":     r.Seat,
            }).WithError(err).Info("order rejected")
            return nil, err
        }
        view.Tickets = append(view.Tickets, model.TicketView{Row: r.Row, Seat: r.Seat, Flight: r.FlightID})
    }

    if err := tx.Commit(); err != nil {
        return nil, fmt.Errorf("commit order: %w", err)
    }
    committed = true

    log.WithField("order_id", view.OrderID).Info("order placed")
    s.publish(view)
    return view, nil
}

// placeTicket resolves the flight, validates the seat and inserts the
// ticket.  Repository sentinels are turned into the typed errors.
func (s *OrderService) placeTicket(ctx context.Context, tx *sql.Tx, orderID uint64, r TicketRequest) error {
    layout, err := s.flights.SeatLayoutTx(ctx, tx, r.FlightID)
    if errors.Is(err, repository.ErrNotFound) {
        return &NotFoundError{Resource: "flight", ID: r.FlightID}
    }
    if err != nil {
        return fmt.Errorf("lookup flight %d: %w", r.FlightID, err)
    }
    if err := ValidateSeat(r.Row, r.Seat, layout); err != nil {
        return err
    }
    t := &model.Ticket{Row: r.Row, Seat: r.Seat, FlightID: r.FlightID, OrderID: orderID}
    err = s.orders.CreateTicketTx(ctx, tx, t)
    if errors.Is(err, repository.ErrConflict) {
        return &ConflictError{FlightID: r.FlightID, Row: r.Row, Seat: r.Seat}
    }
    if err != nil {
        return fmt.Errorf("insert ticket: %w", err)
    }
    return nil
}

// publish announces a committed order in the background.  A failed
// publish is logged; the order stands regardless.
func (s *OrderService) publish(v *model.OrderView) {
    if s.events == nil {
        return
    }
    ev := OrderPlacedEvent(v)
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
        defer cancel()
        if err := s.events.PublishOrderPlaced(ctx, ev); err != nil {
            s.logger.WithFields(logrus.Fields{
                "order_id": ev.OrderID,
                "event_id": ev.EventID,
            }).WithError(err).Warn("order.placed publish failed")
        }
    }()
}

// OrderPlacedEvent builds the broker event for a committed order.
func OrderPlacedEvent(v *model.OrderView) q.OrderPlacedEvent {
    tickets := make([]q.EventTicket, 0, len(v.Tickets))
    for _, t := range v.Tickets {
        tickets = append(tickets, q.EventTicket{FlightID: t.Flight, Row: t.Row, Seat: t.Seat})
    }
    return q.OrderPlacedEvent{
        EventID:  uuid.NewString(),
        OrderID:  v.OrderID,
        UserID:   v.UserID,
        Tickets:  tickets,
        PlacedAt: v.CreatedAt.UTC().Format(time.RFC3339),
    }
}
