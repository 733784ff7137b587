package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// UserID returns the authenticated caller's id stored by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxUserID).(uint64)
    return id, ok && id > 0
}

// Role returns the authenticated caller's role stored by JWTAuth.
func Role(c echo.Context) (string, bool) {
    r, ok := c.Get(ctxRole).(string)
    return r, ok && r != ""
}

// identityKey names the caller for rate limiting: the user id when
// authenticated, otherwise the client IP.
func identityKey(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return "user:" + strconv.FormatUint(id, 10)
    }
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    return "ip:" + ip
}
