package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterIdentity registers GET /v1/me for any authenticated caller.
func RegisterIdentity(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
	e.GET("/v1/me", h.Me, middleware.JWTAuth(jwtSecret))
}
