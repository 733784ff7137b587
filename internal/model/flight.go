package model

import "time"

// Crew is a crew member that can be assigned to flights.  The
// (FirstName, LastName) pair is unique.
type Crew struct {
    ID        uint64 `json:"id"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}

// Flight is a scheduled leg of a route flown by one aircraft.  A flight is
// read-only to order placement: only its aircraft's seat layout matters
// there.
//
// Fields:
//  ID            – flights.id, allocated as the smallest free id.
//  RouteID       – route being flown.
//  AircraftCode  – aircraft assigned to the flight.
//  DepartureTime – scheduled departure (UTC).
//  ArrivalTime   – scheduled arrival (UTC).
//  CrewIDs       – members of flight_crews for this flight.
type Flight struct {
    ID            uint64    `json:"id"`
    RouteID       uint64    `json:"route_id"`
    AircraftCode  string    `json:"aircraft_code"`
    DepartureTime time.Time `json:"departure_time"`
    ArrivalTime   time.Time `json:"arrival_time"`
    CrewIDs       []uint64  `json:"crews"`
}

// FlightSummary is a row of the flight listing.  TicketsAvailable is the
// aircraft capacity minus the tickets already sold on the flight.
type FlightSummary struct {
    ID               uint64    `json:"id"`
    RouteID          uint64    `json:"route_id"`
    Aircraft         string    `json:"aircraft"`
    DepartureTime    time.Time `json:"departure_time"`
    ArrivalTime      time.Time `json:"arrival_time"`
    TicketsAvailable int       `json:"tickets_available"`
    Crews            []Crew    `json:"crews"`
}

// FlightDetail is the single flight view with its crew resolved.
type FlightDetail struct {
    ID            uint64    `json:"id"`
    RouteID       uint64    `json:"route_id"`
    Aircraft      string    `json:"aircraft"`
    DepartureTime time.Time `json:"departure_time"`
    ArrivalTime   time.Time `json:"arrival_time"`
    Crews         []Crew    `json:"crews"`
}
