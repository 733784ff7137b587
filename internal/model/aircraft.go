package model

// AircraftType groups aircraft by wake turbulence category.  The single
// letter WTC code (L, M, H, J) is the natural key.
type AircraftType struct {
    WTC  string `json:"wtc"`  // aircraft_types.wtc
    Name string `json:"name"` // aircraft_types.name (unique)
}

// Aircraft describes one airframe model in the fleet.  SeatRows and
// SeatsInRow define the seat grid [1, SeatRows] x [1, SeatsInRow] that
// every ticket on a flight flown by this aircraft must fall into.
//
// Fields:
//  Code            – aircraft.aircraft_code, primary key.
//  Model           – unique marketing name (e.g. "Airbus A320").
//  Range           – maximum range in kilometres.
//  SeatRows        – number of seat rows.
//  SeatsInRow      – seats per row.
//  AircraftTypeWTC – reference to the aircraft type.
//  AircraftType    – type name, filled by list queries only.
type Aircraft struct {
    Code            string `json:"aircraft_code"`
    Model           string `json:"model"`
    Range           int    `json:"range"`
    SeatRows        int    `json:"rows"`
    SeatsInRow      int    `json:"seats_in_row"`
    AircraftTypeWTC string `json:"aircraft_type_wtc"`
    AircraftType    string `json:"aircraft_type,omitempty"`
}

// SeatLayout is the seat grid of the aircraft assigned to a flight.
type SeatLayout struct {
    Rows       int
    SeatsInRow int
}

// Capacity returns the total number of seats in the layout.
func (l SeatLayout) Capacity() int { return l.Rows * l.SeatsInRow }
