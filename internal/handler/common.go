package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/airline-booking/internal/middleware"
    "github.com/iliyamo/airline-booking/internal/repository"
)

// errUnauthorized is returned by getUserID when JWTAuth did not run.
var errUnauthorized = errors.New("unauthorized")

// getUserID returns the authenticated caller's id.
func getUserID(c echo.Context) (uint64, error) {
    id, ok := middleware.UserID(c)
    if !ok {
        return 0, errUnauthorized
    }
    return id, nil
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// pathCode reads a natural-key path parameter (airport, aircraft, WTC
// codes), normalised to upper case.
func pathCode(c echo.Context, name string) string {
    return strings.ToUpper(strings.TrimSpace(c.Param(name)))
}

func errorJSON(c echo.Context, status int, msg string) error {
    return c.JSON(status, echo.Map{"error": msg})
}

// repoError maps repository sentinels to responses.  Anything unknown is
// logged and reported as a 500 without leaking driver details.
func repoError(c echo.Context, logger *logrus.Logger, err error, what string) error {
    switch {
    case errors.Is(err, repository.ErrNotFound):
        return errorJSON(c, http.StatusNotFound, what+" not found")
    case errors.Is(err, repository.ErrConflict):
        return errorJSON(c, http.StatusConflict, what+" conflicts with existing data")
    case errors.Is(err, repository.ErrIDLockTimeout):
        return errorJSON(c, http.StatusServiceUnavailable, "try again later")
    }
    logger.WithError(err).WithFields(logrus.Fields{
        "method": c.Request().Method,
        "path":   c.Path(),
    }).Error("db error")
    return errorJSON(c, http.StatusInternalServerError, "db error")
}
