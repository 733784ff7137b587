package middleware

import (
    "net/http"
    "net/http/httptest"
    "strconv"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// serve runs one request through mw and a handler echoing the identity.
func serve(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    e.GET("/whoami", func(c echo.Context) error {
        id, _ := UserID(c)
        role, _ := Role(c)
        return c.JSON(http.StatusOK, echo.Map{"id": id, "role": role})
    }, mws...)
    req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
    t.Helper()
    s, err := jwt.NewWithClaims(method, claims).SignedString(key)
    require.NoError(t, err)
    return s
}

// userToken signs a token shaped like the identity provider's: decimal
// sub, role, exp and iat.
func userToken(t *testing.T, userID uint64, role string) string {
    t.Helper()
    now := time.Now()
    return sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
        "sub":  strconv.FormatUint(userID, 10),
        "role": role,
        "exp":  now.Add(time.Hour).Unix(),
        "iat":  now.Unix(),
    })
}

func TestJWTAuth_ValidToken(t *testing.T) {
    rec := serve(t, "Bearer "+userToken(t, 7, "customer"), JWTAuth(testSecret))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"id":7,"role":"CUSTOMER"}`, rec.Body.String())
}

func TestJWTAuth_NumericSubject(t *testing.T) {
    raw := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
        "sub": 12, "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
    })
    rec := serve(t, "Bearer "+raw, JWTAuth(testSecret))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"id":12,"role":"ADMIN"}`, rec.Body.String())
}

func TestJWTAuth_Rejects(t *testing.T) {
    future := time.Now().Add(time.Hour).Unix()
    tests := []struct {
        name   string
        header string
    }{
        {"missing header", ""},
        {"not bearer", "Basic abc"},
        {"garbage", "Bearer not-a-jwt"},
        {"wrong secret", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "1", "exp": future})},
        {"expired", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Minute).Unix()})},
        {"no exp", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "1"})},
        {"other hmac alg", "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"sub": "1", "exp": future})},
        {"bad subject", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "abc", "exp": future})},
        {"zero subject", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "0", "exp": future})},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            rec := serve(t, tt.header, JWTAuth(testSecret))
            assert.Equal(t, http.StatusUnauthorized, rec.Code)
        })
    }
}

func TestRequireRole(t *testing.T) {
    customer := userToken(t, 7, RoleCustomer)
    admin := userToken(t, 1, RoleAdmin)

    rec := serve(t, "Bearer "+customer, JWTAuth(testSecret), RequireRole(RoleAdmin))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = serve(t, "Bearer "+admin, JWTAuth(testSecret), RequireRole(RoleAdmin))
    assert.Equal(t, http.StatusOK, rec.Code)

    rec = serve(t, "Bearer "+customer, JWTAuth(testSecret), RequireRole("customer", "admin"))
    assert.Equal(t, http.StatusOK, rec.Code)

    // No JWTAuth in front: no role in context.
    rec = serve(t, "", RequireRole(RoleCustomer))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
