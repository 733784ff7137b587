package handler

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/model"
    "github.com/iliyamo/airline-booking/internal/repository"
    "github.com/iliyamo/airline-booking/internal/service"
)

// OrderPlacer books tickets.  *service.OrderService implements it.
type OrderPlacer interface {
    PlaceOrder(ctx context.Context, userID uint64, reqs []service.TicketRequest) (*model.OrderView, error)
}

// OrderReader reads a customer's orders.  *repository.OrderRepo implements it.
type OrderReader interface {
    ListByUser(ctx context.Context, userID uint64) ([]model.OrderView, error)
    GetByIDForUser(ctx context.Context, orderID, userID uint64) (*model.OrderView, error)
}

// UserLookup resolves the account behind a token.  *repository.UserRepo
// implements it.
type UserLookup interface {
    GetByID(ctx context.Context, id uint64) (model.User, error)
}

// OrderHandler serves the customer's order endpoints.
type OrderHandler struct {
    Orders OrderPlacer
    Reader OrderReader
    Users  UserLookup
    Logger *logrus.Logger
}

// NewOrderHandler constructs an OrderHandler and panics if a dependency is nil.
func NewOrderHandler(orders OrderPlacer, reader OrderReader, users UserLookup, logger *logrus.Logger) *OrderHandler {
    if orders == nil || reader == nil || users == nil {
        panic("nil dependency passed to NewOrderHandler")
    }
    return &OrderHandler{Orders: orders, Reader: reader, Users: users, Logger: logger}
}

type placeOrderRequest struct {
    Tickets []service.TicketRequest `json:"tickets"`
}

// activeUser resolves the caller and rejects unknown or deactivated
// accounts.  A non-nil error has already been written to the response.
func (h *OrderHandler) activeUser(c echo.Context) (model.User, bool, error) {
    uid, err := getUserID(c)
    if err != nil {
        return model.User{}, false, errorJSON(c, http.StatusUnauthorized, "unauthorized")
    }
    u, err := h.Users.GetByID(c.Request().Context(), uid)
    if errors.Is(err, repository.ErrNotFound) {
        return model.User{}, false, errorJSON(c, http.StatusUnauthorized, "unknown user")
    }
    if err != nil {
        return model.User{}, false, repoError(c, h.Logger, err, "user")
    }
    if !u.IsActive {
        return model.User{}, false, errorJSON(c, http.StatusForbidden, "user is inactive")
    }
    return u, true, nil
}

// PlaceOrder handles POST /v1/orders.  Body: {"tickets":[{"flight":1,"row":1,"seat":2}]}.
// The whole order succeeds or nothing is booked.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
    u, ok, err := h.activeUser(c)
    if !ok {
        return err
    }
    var body placeOrderRequest
    if err := c.Bind(&body); err != nil {
        return errorJSON(c, http.StatusBadRequest, "invalid request body")
    }

    view, err := h.Orders.PlaceOrder(c.Request().Context(), u.ID, body.Tickets)
    if err != nil {
        return orderError(c, h.Logger, err)
    }
    return c.JSON(http.StatusCreated, view)
}

// orderError maps order placement failures to responses.  Typed errors
// carry their own messages.
func orderError(c echo.Context, logger *logrus.Logger, err error) error {
    switch {
    case errors.Is(err, service.ErrValidation):
        return errorJSON(c, http.StatusBadRequest, err.Error())
    case errors.Is(err, service.ErrNotFound):
        return errorJSON(c, http.StatusNotFound, err.Error())
    case errors.Is(err, service.ErrConflict):
        return errorJSON(c, http.StatusConflict, err.Error())
    }
    logger.WithError(err).Error("place order failed")
    return errorJSON(c, http.StatusInternalServerError, "could not place order")
}

// ListOrders handles GET /v1/orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return errorJSON(c, http.StatusUnauthorized, "unauthorized")
    }
    items, err := h.Reader.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return repoError(c, h.Logger, err, "order")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/orders/:id.  Another user's order is reported
// as missing.
func (h *OrderHandler) GetOrder(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return errorJSON(c, http.StatusUnauthorized, "unauthorized")
    }
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    v, err := h.Reader.GetByIDForUser(c.Request().Context(), id, uid)
    if err != nil {
        return repoError(c, h.Logger, err, "order")
    }
    return c.JSON(http.StatusOK, v)
}

// Me handles GET /v1/me and returns the account behind the token.
func (h *OrderHandler) Me(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return errorJSON(c, http.StatusUnauthorized, "unauthorized")
    }
    u, err := h.Users.GetByID(c.Request().Context(), uid)
    if err != nil {
        return repoError(c, h.Logger, err, "user")
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":         u.ID,
        "email":      u.Email,
        "role":       u.Role,
        "is_active":  u.IsActive,
        "created_at": u.CreatedAt,
    })
}
