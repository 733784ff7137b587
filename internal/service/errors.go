// Package service implements order placement: the transaction that turns a
// list of requested seats into one order and its tickets.
package service

import (
    "errors"
    "fmt"
)

// Sentinels matched by the typed errors below.  Handlers use errors.Is on
// these to pick a status code.
var (
    ErrNotFound   = errors.New("not found")
    ErrValidation = errors.New("validation failed")
    ErrConflict   = errors.New("conflict")
)

// ErrEmptyOrder is returned for an order without tickets.
var ErrEmptyOrder = fmt.Errorf("%w: order must contain at least one ticket", ErrValidation)

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
    Resource string
    ID       uint64
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports a seat coordinate outside the aircraft layout.
// Field is the ticket dimension ("row" or "seat"), Limit the aircraft
// attribute bounding it ("rows" or "seats_in_row").
type ValidationError struct {
    Field string
    Limit string
    Min   int
    Max   int
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s number must be in available range: (1, %s): (%d, %d)",
        e.Field, e.Field, e.Limit, e.Min, e.Max)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a seat already sold on a flight, either by another
// order or earlier in the same request.
type ConflictError struct {
    FlightID uint64
    Row      int
    Seat     int
}

func (e *ConflictError) Error() string {
    return fmt.Sprintf("seat already taken: flight %d row %d seat %d", e.FlightID, e.Row, e.Seat)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
