package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/model"
    "github.com/iliyamo/airline-booking/internal/repository"
)

// AircraftHandler serves aircraft types and aircraft.
type AircraftHandler struct {
    Repo   *repository.AircraftRepo
    Logger *logrus.Logger
}

// NewAircraftHandler constructs an AircraftHandler and panics on a nil repository.
func NewAircraftHandler(repo *repository.AircraftRepo, logger *logrus.Logger) *AircraftHandler {
    if repo == nil {
        panic("nil repository passed to NewAircraftHandler")
    }
    return &AircraftHandler{Repo: repo, Logger: logger}
}

// ListTypes handles GET /v1/aircraft-types.
func (h *AircraftHandler) ListTypes(c echo.Context) error {
    items, err := h.Repo.ListTypes(c.Request().Context())
    if err != nil {
        return repoError(c, h.Logger, err, "aircraft type")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetType handles GET /v1/aircraft-types/:wtc.
func (h *AircraftHandler) GetType(c echo.Context) error {
    t, err := h.Repo.GetType(c.Request().Context(), pathCode(c, "wtc"))
    if err != nil {
        return repoError(c, h.Logger, err, "aircraft type")
    }
    return c.JSON(http.StatusOK, t)
}

func bindAircraftType(c echo.Context) (*model.AircraftType, string) {
    var body model.AircraftType
    if err := c.Bind(&body); err != nil {
        return nil, "invalid request body"
    }
    body.WTC = strings.ToUpper(strings.TrimSpace(body.WTC))
    body.Name = strings.TrimSpace(body.Name)
    if len(body.WTC) != 1 {
        return nil, "wtc must be a single letter"
    }
    if body.Name == "" {
        return nil, "name is required"
    }
    return &body, ""
}

// CreateType handles POST /v1/aircraft-types.
func (h *AircraftHandler) CreateType(c echo.Context) error {
    t, msg := bindAircraftType(c)
    if t == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.CreateType(c.Request().Context(), t); err != nil {
        return repoError(c, h.Logger, err, "aircraft type")
    }
    return c.JSON(http.StatusCreated, t)
}

// UpdateType handles PUT /v1/aircraft-types/:wtc.
func (h *AircraftHandler) UpdateType(c echo.Context) error {
    t, msg := bindAircraftType(c)
    if t == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.UpdateType(c.Request().Context(), pathCode(c, "wtc"), t); err != nil {
        return repoError(c, h.Logger, err, "aircraft type")
    }
    return c.JSON(http.StatusOK, t)
}

// DeleteType handles DELETE /v1/aircraft-types/:wtc.
func (h *AircraftHandler) DeleteType(c echo.Context) error {
    if err := h.Repo.DeleteType(c.Request().Context(), pathCode(c, "wtc")); err != nil {
        return repoError(c, h.Logger, err, "aircraft type")
    }
    return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/aircraft.
func (h *AircraftHandler) List(c echo.Context) error {
    items, err := h.Repo.List(c.Request().Context())
    if err != nil {
        return repoError(c, h.Logger, err, "aircraft")
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/aircraft/:code.
func (h *AircraftHandler) Get(c echo.Context) error {
    a, err := h.Repo.Get(c.Request().Context(), pathCode(c, "code"))
    if err != nil {
        return repoError(c, h.Logger, err, "aircraft")
    }
    return c.JSON(http.StatusOK, a)
}

func bindAircraft(c echo.Context) (*model.Aircraft, string) {
    var body model.Aircraft
    if err := c.Bind(&body); err != nil {
        return nil, "invalid request body"
    }
    body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
    body.Model = strings.TrimSpace(body.Model)
    body.AircraftTypeWTC = strings.ToUpper(strings.TrimSpace(body.AircraftTypeWTC))
    switch {
    case body.Code == "":
        return nil, "aircraft_code is required"
    case body.Model == "":
        return nil, "model is required"
    case body.AircraftTypeWTC == "":
        return nil, "aircraft_type_wtc is required"
    case body.Range <= 0:
        return nil, "range must be positive"
    case body.SeatRows <= 0 || body.SeatsInRow <= 0:
        return nil, "rows and seats_in_row must be positive"
    }
    body.AircraftType = ""
    return &body, ""
}

// Create handles POST /v1/aircraft.
func (h *AircraftHandler) Create(c echo.Context) error {
    a, msg := bindAircraft(c)
    if a == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.Create(c.Request().Context(), a); err != nil {
        return repoError(c, h.Logger, err, "aircraft")
    }
    return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /v1/aircraft/:code.
func (h *AircraftHandler) Update(c echo.Context) error {
    a, msg := bindAircraft(c)
    if a == nil {
        return errorJSON(c, http.StatusBadRequest, msg)
    }
    if err := h.Repo.Update(c.Request().Context(), pathCode(c, "code"), a); err != nil {
        return repoError(c, h.Logger, err, "aircraft")
    }
    return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /v1/aircraft/:code.
func (h *AircraftHandler) Delete(c echo.Context) error {
    if err := h.Repo.Delete(c.Request().Context(), pathCode(c, "code")); err != nil {
        return repoError(c, h.Logger, err, "aircraft")
    }
    return c.NoContent(http.StatusNoContent)
}
