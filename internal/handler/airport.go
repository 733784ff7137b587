package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/model"
    "github.com/iliyamo/airline-booking/internal/repository"
)

// AirportHandler serves airports and the routes between them.
type AirportHandler struct {
    Repo   *repository.AirportRepo
    Logger *logrus.Logger
}

// NewAirportHandler constructs an AirportHandler and panics on a nil repository.
func NewAirportHandler(repo *repository.AirportRepo, logger *logrus.Logger) *AirportHandler {
    if repo == nil {
        panic("nil repository passed to NewAirportHandler")
    }
    return &AirportHandler{Repo: repo, Logger: logger}
}

// ListAirports handles GET /v1/airports.
func (h *AirportHandler) ListAirports(c echo.Context) error {
    items, err := h.Repo.ListAirports(c.Request().Context())
    if err != nil {
        return repoError(c, h.Logger, err, "airport")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetAirport handles GET /v1/airports/:code.
func (h *AirportHandler) GetAirport(c echo.Context) error {
    a, err := h.Repo.GetAirport(c.Request().Context(), pathCode(c, "code"))
    if err != nil {
        return repoError(c, h.Logger, err, "airport")
    }
    return c.JSON(http.StatusOK, a)
}

func bindAirport(c echo.Context) (*model.Airport, string) {
    var body model.Airport
    if err := c.Bind(&body); err != nil {
        return nil, "invalid request body"
    }
    body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
    body.Name = strings.TrimSpace(body.Name)
    body.ClosestBigCity = strings.TrimSpace(body.ClosestBigCity)
    switch {
    case len(body.Code) != 3:
        return nil, "airport_code must have 3 letters"
    case body.Name == "":
        return nil, "name is required"
    case body.ClosestBigCity == "":
        return nil, "closest_big_city is required"
    }
    return &body, ""
}

// CreateAirport handles POST /v1/airports.
func (h *AirportHandler) CreateAirport(c echo.Context) error {
    a, msg := bindAirport(c)
    if a == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.CreateAirport(c.Request().Context(), a); err != nil {
        return repoError(c, h.Logger, err, "airport")
    }
    return c.JSON(http.StatusCreated, a)
}

// UpdateAirport handles PUT /v1/airports/:code.
func (h *AirportHandler) UpdateAirport(c echo.Context) error {
    a, msg := bindAirport(c)
    if a == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.UpdateAirport(c.Request().Context(), pathCode(c, "code"), a); err != nil {
        return repoError(c, h.Logger, err, "airport")
    }
    return c.JSON(http.StatusOK, a)
}

// DeleteAirport handles DELETE /v1/airports/:code.
func (h *AirportHandler) DeleteAirport(c echo.Context) error {
    if err := h.Repo.DeleteAirport(c.Request().Context(), pathCode(c, "code")); err != nil {
        return repoError(c, h.Logger, err, "airport")
    }
    return c.NoContent(http.StatusNoContent)
}

// ListRoutes handles GET /v1/routes?source=&destination=.  An empty result
// is reported as 404.
func (h *AirportHandler) ListRoutes(c echo.Context) error {
    src := strings.ToUpper(strings.TrimSpace(c.QueryParam("source")))
    dst := strings.ToUpper(strings.TrimSpace(c.QueryParam("destination")))
    items, err := h.Repo.ListRoutes(c.Request().Context(), src, dst)
    if err != nil {
        return repoError(c, h.Logger, err, "route")
    }
    if len(items) == 0 {
        return errorJSON(c, http.StatusNotFound, "no routes found")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoute handles GET /v1/routes/:id.
func (h *AirportHandler) GetRoute(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    rt, err := h.Repo.GetRoute(c.Request().Context(), id)
    if err != nil {
        return repoError(c, h.Logger, err, "route")
    }
    return c.JSON(http.StatusOK, rt)
}

func bindRoute(c echo.Context) (*model.Route, string) {
    var body model.Route
    if err := c.Bind(&body); err != nil {
        return nil, "invalid request body"
    }
    body.SourceAirportCode = strings.ToUpper(strings.TrimSpace(body.SourceAirportCode))
    body.DestinationAirportCode = strings.ToUpper(strings.TrimSpace(body.DestinationAirportCode))
    switch {
    case body.SourceAirportCode == "" || body.DestinationAirportCode == "":
        return nil, "source and destination airport codes are required"
    case body.SourceAirportCode == body.DestinationAirportCode:
        return nil, "source and destination must differ"
    case body.Distance <= 0:
        return nil, "distance must be positive"
    }
    return &body, ""
}

// CreateRoute handles POST /v1/routes.  The route gets the smallest unused id.
func (h *AirportHandler) CreateRoute(c echo.Context) error {
    rt, msg := bindRoute(c)
    if rt == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.CreateRoute(c.Request().Context(), rt); err != nil {
        return repoError(c, h.Logger, err, "route")
    }
    return c.JSON(http.StatusCreated, rt)
}

// UpdateRoute handles PUT /v1/routes/:id.
func (h *AirportHandler) UpdateRoute(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    rt, msg := bindRoute(c)
    if rt == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.UpdateRoute(c.Request().Context(), id, rt); err != nil {
        return repoError(c, h.Logger, err, "route")
    }
    return c.JSON(http.StatusOK, rt)
}

// DeleteRoute handles DELETE /v1/routes/:id.
func (h *AirportHandler) DeleteRoute(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return errorJSON(c, http.StatusBadRequest, "invalid id")
    }
    if err := h.Repo.DeleteRoute(c.Request().Context(), id); err != nil {
        return repoError(c, h.Logger, err, "route")
    }
    return c.NoContent(http.StatusNoContent)
}
