package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
)

// RegisterCatalog registers the read-only catalogue under /v1.  These
// routes need no token; cache is applied to every one of them.
func RegisterCatalog(e *echo.Echo, a *handler.AircraftHandler, ap *handler.AirportHandler, f *handler.FlightHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.GET("/aircraft-types", a.ListTypes, cache)
	g.GET("/aircraft-types/:wtc", a.GetType, cache)
	g.GET("/aircraft", a.List, cache)
	g.GET("/aircraft/:code", a.Get, cache)

	g.GET("/airports", ap.ListAirports, cache)
	g.GET("/airports/:code", ap.GetAirport, cache)
	g.GET("/routes", ap.ListRoutes, cache)
	g.GET("/routes/:id", ap.GetRoute, cache)

	g.GET("/crews", f.ListCrews, cache)
	g.GET("/crews/:id", f.GetCrew, cache)
	g.GET("/flights", f.ListFlights, cache)
	g.GET("/flights/:id", f.GetFlight, cache)
}
