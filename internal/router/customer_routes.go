package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterOrders registers the order endpoints under /v1/orders.  They
// require a valid JWT with the CUSTOMER or ADMIN role.  Placing an order is
// rate limited per user and purges the catalogue cache, since seat
// availability changes.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string, limit, invalidate echo.MiddlewareFunc) {
	g := e.Group("/v1/orders")
	auth := middleware.JWTAuth(jwtSecret)
	role := middleware.RequireRole(middleware.RoleCustomer, middleware.RoleAdmin)
	g.POST("", h.PlaceOrder, auth, role, limit, invalidate)
	g.GET("", h.ListOrders, auth, role)
	g.GET("/:id", h.GetOrder, auth, role)
}
