package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
    ctxUserID = "user_id" // uint64
    ctxRole   = "role"    // string
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// issued by the identity provider and stores the caller's id and role in
// the request context.  Only HS256 tokens signed with secret and carrying
// an exp claim are accepted.  Handlers read the identity with UserID and
// Role.
func JWTAuth(secret string) echo.MiddlewareFunc {
    parser := jwt.NewParser(
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithExpirationRequired(),
    )
    keyFunc := func(*jwt.Token) (interface{}, error) { return []byte(secret), nil }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            claims := jwt.MapClaims{}
            tok, err := parser.ParseWithClaims(raw, claims, keyFunc)
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            uid, ok := subjectID(claims["sub"])
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            role, _ := claims["role"].(string)

            c.Set(ctxUserID, uid)
            c.Set(ctxRole, strings.ToUpper(role))
            return next(c)
        }
    }
}

// subjectID accepts the sub claim either as a decimal string or as a JSON
// number.
func subjectID(v interface{}) (uint64, bool) {
    switch s := v.(type) {
    case string:
        id, err := strconv.ParseUint(s, 10, 64)
        return id, err == nil && id > 0
    case float64:
        if s < 1 || s != float64(uint64(s)) {
            return 0, false
        }
        return uint64(s), true
    }
    return 0, false
}
