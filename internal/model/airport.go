package model

// Airport is identified by its three letter code.
type Airport struct {
    Code           string `json:"airport_code"`     // airports.airport_code
    Name           string `json:"name"`             // airports.name (unique)
    ClosestBigCity string `json:"closest_big_city"` // airports.closest_big_city
}

// Route connects two airports.  Only one route may exist per ordered
// (source, destination) pair.  Ids are allocated as the smallest free
// positive integer, so ids of deleted routes are reused.
type Route struct {
    ID                     uint64 `json:"id"`
    Distance               int    `json:"distance"`
    SourceAirportCode      string `json:"source_airport_code"`
    DestinationAirportCode string `json:"destination_airport_code"`
}

// RouteView is the list representation of a route with airport names
// resolved.
type RouteView struct {
    ID          uint64 `json:"id"`
    Distance    int    `json:"distance"`
    Source      string `json:"source"`
    Destination string `json:"destination"`
}
