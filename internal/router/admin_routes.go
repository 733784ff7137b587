package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterAdmin registers catalogue writes under /v1.  All routes require a
// valid JWT and the ADMIN role; a successful write purges the catalogue
// cache through invalidate.  Middleware is attached per route so that
// unknown /v1 paths still answer 404.
func RegisterAdmin(e *echo.Echo, a *handler.AircraftHandler, ap *handler.AirportHandler, f *handler.FlightHandler, jwtSecret string, invalidate echo.MiddlewareFunc) {
	g := e.Group("/v1")
	mw := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
		invalidate,
	}

	// ---- Aircraft ----
	g.POST("/aircraft-types", a.CreateType, mw...)
	g.PUT("/aircraft-types/:wtc", a.UpdateType, mw...)
	g.DELETE("/aircraft-types/:wtc", a.DeleteType, mw...)
	g.POST("/aircraft", a.Create, mw...)
	g.PUT("/aircraft/:code", a.Update, mw...)
	g.DELETE("/aircraft/:code", a.Delete, mw...)

	// ---- Airports and routes ----
	g.POST("/airports", ap.CreateAirport, mw...)
	g.PUT("/airports/:code", ap.UpdateAirport, mw...)
	g.DELETE("/airports/:code", ap.DeleteAirport, mw...)
	g.POST("/routes", ap.CreateRoute, mw...)
	g.PUT("/routes/:id", ap.UpdateRoute, mw...)
	g.DELETE("/routes/:id", ap.DeleteRoute, mw...)

	// ---- Crews and flights ----
	g.POST("/crews", f.CreateCrew, mw...)
	g.DELETE("/crews/:id", f.DeleteCrew, mw...)
	g.POST("/flights", f.CreateFlight, mw...)
	g.PUT("/flights/:id", f.UpdateFlight, mw...)
	g.DELETE("/flights/:id", f.DeleteFlight, mw...)
}
