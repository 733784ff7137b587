package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/model"
    "github.com/iliyamo/airline-booking/internal/repository"
)

// FlightHandler serves flights and crew members.
type FlightHandler struct {
    Flights *repository.FlightRepo
    Crews   *repository.CrewRepo
    Logger  *logrus.Logger
}

// NewFlightHandler constructs a FlightHandler and panics if a repository is nil.
func NewFlightHandler(flights *repository.FlightRepo, crews *repository.CrewRepo, logger *logrus.Logger) *FlightHandler {
    if flights == nil || crews == nil {
        panic("nil repository passed to NewFlightHandler")
    }
    return &FlightHandler{Flights: flights, Crews: crews, Logger: logger}
}

// ListCrews handles GET /v1/crews.
func (h *FlightHandler) ListCrews(c echo.Context) error {
    items, err := h.Crews.List(c.Request().Context())
    if err != nil {
        return repoError(c, h.Logger, err, "crew")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCrew handles GET /v1/crews/:id.
func (h *FlightHandler) GetCrew(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    cr, err := h.Crews.Get(c.Request().Context(), id)
    if err != nil {
        return repoError(c, h.Logger, err, "crew")
    }
    return c.JSON(http.StatusOK, cr)
}

// CreateCrew handles POST /v1/crews.  The member gets the smallest unused id.
func (h *FlightHandler) CreateCrew(c echo.Context) error {
    var body model.Crew
    if err := c.Bind(&body); err != nil {
        return errorJSON(c, http.StatusBadRequest, "invalid request body")
    }
    body.FirstName = strings.TrimSpace(body.FirstName)
    body.LastName = strings.TrimSpace(body.LastName)
    if body.FirstName == "" || body.LastName == "" {
        return errorJSON(c, http.StatusBadRequest, "first_name and last_name are required")
    }
    body.ID = 0
    if err := h.Crews.Create(c.Request().Context(), &body); err != nil {
        return repoError(c, h.Logger, err, "crew")
    }
    return c.JSON(http.StatusCreated, body)
}

// DeleteCrew handles DELETE /v1/crews/:id.
func (h *FlightHandler) DeleteCrew(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    if err := h.Crews.Delete(c.Request().Context(), id); err != nil {
        return repoError(c, h.Logger, err, "crew")
    }
    return c.NoContent(http.StatusNoContent)
}

// ListFlights handles GET /v1/flights.  Flights are ordered by departure
// and carry the number of seats still for sale.
func (h *FlightHandler) ListFlights(c echo.Context) error {
    items, err := h.Flights.List(c.Request().Context())
    if err != nil {
        return repoError(c, h.Logger, err, "flight")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFlight handles GET /v1/flights/:id.
func (h *FlightHandler) GetFlight(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    f, err := h.Flights.Get(c.Request().Context(), id)
    if err != nil {
        return repoError(c, h.Logger, err, "flight")
    }
    return c.JSON(http.StatusOK, f)
}

func bindFlight(c echo.Context) (*model.Flight, string) {
    var body model.Flight
    if err := c.Bind(&body); err != nil {
        return nil, "invalid request body"
    }
    body.AircraftCode = strings.ToUpper(strings.TrimSpace(body.AircraftCode))
    switch {
    case body.RouteID == 0:
        return nil, "route_id is required"
    case body.AircraftCode == "":
        return nil, "aircraft_code is required"
    case body.DepartureTime.IsZero() || body.ArrivalTime.IsZero():
        return nil, "departure_time and arrival_time are required"
    case !body.ArrivalTime.After(body.DepartureTime):
        return nil, "arrival_time must be after departure_time"
    }
    body.DepartureTime = body.DepartureTime.UTC()
    body.ArrivalTime = body.ArrivalTime.UTC()
    if body.CrewIDs == nil {
        body.CrewIDs = []uint64{}
    }
    body.ID = 0
    return &body, ""
}

// flightError reports an unknown crew member as such instead of blaming
// the flight.
func flightError(c echo.Context, logger *logrus.Logger, err error) error {
    if errors.Is(err, repository.ErrCrewNotFound) {
        return errorJSON(c, http.StatusNotFound, "crew not found")
    }
    return repoError(c, logger, err, "flight")
}

// CreateFlight handles POST /v1/flights.  The flight gets the smallest
// unused id; listed crew members are assigned in the same transaction.
func (h *FlightHandler) CreateFlight(c echo.Context) error {
    f, msg := bindFlight(c)
    if f == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Flights.Create(c.Request().Context(), f); err != nil {
        return flightError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, f)
}

// UpdateFlight handles PUT /v1/flights/:id.  The crew list replaces the
// current assignment.
func (h *FlightHandler) UpdateFlight(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    f, msg := bindFlight(c)
    if f == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Flights.Update(c.Request().Context(), id, f); err != nil {
        return flightError(c, h.Logger, err)
    }
    return c.JSON(http.StatusOK, f)
}

// DeleteFlight handles DELETE /v1/flights/:id.
func (h *FlightHandler) DeleteFlight(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    if err := h.Flights.Delete(c.Request().Context(), id); err != nil {
        return repoError(c, h.Logger, err, "flight")
    }
    return c.NoContent(http.StatusNoContent)
}
