package model

import "time"

// Order groups the tickets bought in one booking request.  It is created
// once, together with all of its tickets, and never modified afterwards.
//
// Fields:
//  ID        – orders.id, assigned by the database.
//  UserID    – user who placed the order.
//  CreatedAt – assigned by the database when the row is inserted.
type Order struct {
    ID        uint64    // orders.id
    UserID    uint64    // orders.user_id
    CreatedAt time.Time // orders.created_at
}

// Ticket is one seat on one flight.  No two tickets may share the same
// (Row, Seat, FlightID) triple; the unique_ticket index enforces it.
type Ticket struct {
    ID       uint64 // tickets.id
    Row      int    // tickets.seat_row
    Seat     int    // tickets.seat
    FlightID uint64 // tickets.flight_id
    OrderID  uint64 // tickets.order_id
}

// TicketView is the client-facing form of a ticket.
type TicketView struct {
    Row    int    `json:"row"`
    Seat   int    `json:"seat"`
    Flight uint64 `json:"flight"`
}

// OrderView is the client-facing form of an order with its tickets in the
// order they were requested.
type OrderView struct {
    OrderID   uint64       `json:"order_id"`
    CreatedAt time.Time    `json:"created_at"`
    UserID    uint64       `json:"user_id"`
    Tickets   []TicketView `json:"tickets"`
}
