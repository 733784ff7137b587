package service

import "github.com/iliyamo/airline-booking/internal/model"

// ValidateSeat checks that (row, seat) lies on the layout's grid.  The row
// is checked first, so a request out of range on both axes reports the row.
func ValidateSeat(row, seat int, layout model.SeatLayout) error {
    if row < 1 || row > layout.Rows {
        return &ValidationError{Field: "row", Limit: "rows", Min: 1, Max: layout.Rows}
    }
    if seat < 1 || seat > layout.SeatsInRow {
        return &ValidationError{Field: "seat", Limit: "seats_in_row", Min: 1, Max: layout.SeatsInRow}
    }
    return nil
}
