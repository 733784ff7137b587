// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// OrderPlacedQueue is the durable queue order events are routed to.
const OrderPlacedQueue = "order.placed"

// OrderPlacedEvent is published once an order and all of its tickets have
// been committed.  It carries enough for downstream consumers to log or
// notify without querying the primary database.
type OrderPlacedEvent struct {
    EventID  string        `json:"event_id"`
    OrderID  uint64        `json:"order_id"`
    UserID   uint64        `json:"user_id"`
    Tickets  []EventTicket `json:"tickets"`
    PlacedAt string        `json:"placed_at"` // RFC3339, UTC
}

// EventTicket is one seat of an OrderPlacedEvent.
type EventTicket struct {
    FlightID uint64 `json:"flight"`
    Row      int    `json:"row"`
    Seat     int    `json:"seat"`
}
