package handler

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strconv"
    "strings"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    logtest "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-booking/internal/middleware"
    "github.com/iliyamo/airline-booking/internal/model"
    "github.com/iliyamo/airline-booking/internal/repository"
    "github.com/iliyamo/airline-booking/internal/service"
)

const secret = "handler-secret"

type fakePlacer struct {
    gotUser uint64
    gotReqs []service.TicketRequest
    view    *model.OrderView
    err     error
}

func (f *fakePlacer) PlaceOrder(_ context.Context, userID uint64, reqs []service.TicketRequest) (*model.OrderView, error) {
    f.gotUser, f.gotReqs = userID, reqs
    return f.view, f.err
}

type fakeReader struct {
    orders map[uint64]model.OrderView
}

func (f *fakeReader) ListByUser(_ context.Context, userID uint64) ([]model.OrderView, error) {
    out := []model.OrderView{}
    for _, o := range f.orders {
        if o.UserID == userID {
            out = append(out, o)
        }
    }
    return out, nil
}

func (f *fakeReader) GetByIDForUser(_ context.Context, orderID, userID uint64) (*model.OrderView, error) {
    o, ok := f.orders[orderID]
    if !ok || o.UserID != userID {
        return nil, repository.ErrNotFound
    }
    return &o, nil
}

type fakeUsers map[uint64]model.User

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
    u, ok := f[id]
    if !ok {
        return model.User{}, repository.ErrNotFound
    }
    return u, nil
}

func newOrderServer(t *testing.T, placer *fakePlacer) (*echo.Echo, *logtest.Hook) {
    t.Helper()
    logger, hook := logtest.NewNullLogger()
    users := fakeUsers{
        7: {ID: 7, Email: "a@example.com", Role: "CUSTOMER", IsActive: true},
        8: {ID: 8, Email: "b@example.com", Role: "CUSTOMER", IsActive: false},
    }
    reader := &fakeReader{orders: map[uint64]model.OrderView{
        42: {OrderID: 42, UserID: 7, Tickets: []model.TicketView{{Row: 1, Seat: 1, Flight: 100}}},
    }}
    h := NewOrderHandler(placer, reader, users, logger)

    e := echo.New()
    g := e.Group("/v1/orders", middleware.JWTAuth(secret))
    g.POST("", h.PlaceOrder)
    g.GET("", h.ListOrders)
    g.GET("/:id", h.GetOrder)
    e.GET("/v1/me", h.Me, middleware.JWTAuth(secret))
    return e, hook
}

func do(t *testing.T, e *echo.Echo, method, target string, userID uint64, body string) *httptest.ResponseRecorder {
    t.Helper()
    tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub":  strconv.FormatUint(userID, 10),
        "role": "CUSTOMER",
        "exp":  time.Now().Add(time.Hour).Unix(),
    }).SignedString([]byte(secret))
    require.NoError(t, err)
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestPlaceOrder_Created(t *testing.T) {
    placer := &fakePlacer{view: &model.OrderView{
        OrderID:   42,
        CreatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
        UserID:    7,
        Tickets:   []model.TicketView{{Row: 1, Seat: 1, Flight: 100}, {Row: 1, Seat: 2, Flight: 100}},
    }}
    e, _ := newOrderServer(t, placer)

    rec := do(t, e, http.MethodPost, "/v1/orders", 7,
        `{"tickets":[{"flight":100,"row":1,"seat":1},{"flight":100,"row":1,"seat":2}]}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    assert.JSONEq(t, `{
        "order_id": 42,
        "created_at": "2026-04-01T12:00:00Z",
        "user_id": 7,
        "tickets": [{"row":1,"seat":1,"flight":100},{"row":1,"seat":2,"flight":100}]
    }`, rec.Body.String())
    assert.Equal(t, uint64(7), placer.gotUser)
    assert.Equal(t, []service.TicketRequest{{FlightID: 100, Row: 1, Seat: 1}, {FlightID: 100, Row: 1, Seat: 2}}, placer.gotReqs)
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
    tests := []struct {
        name     string
        err      error
        wantCode int
        wantBody string
    }{
        {"validation", &service.ValidationError{Field: "row", Limit: "rows", Min: 1, Max: 30}, http.StatusBadRequest,
            `{"error":"row: row number must be in available range: (1, rows): (1, 30)"}`},
        {"empty", service.ErrEmptyOrder, http.StatusBadRequest, ""},
        {"missing flight", &service.NotFoundError{Resource: "flight", ID: 999}, http.StatusNotFound,
            `{"error":"flight with id 999 not found"}`},
        {"seat taken", &service.ConflictError{FlightID: 100, Row: 1, Seat: 1}, http.StatusConflict, ""},
        {"store down", context.DeadlineExceeded, http.StatusInternalServerError, `{"error":"could not place order"}`},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            e, _ := newOrderServer(t, &fakePlacer{err: tt.err})
            rec := do(t, e, http.MethodPost, "/v1/orders", 7, `{"tickets":[{"flight":100,"row":1,"seat":1}]}`)
            assert.Equal(t, tt.wantCode, rec.Code)
            if tt.wantBody != "" {
                assert.JSONEq(t, tt.wantBody, rec.Body.String())
            }
        })
    }
}

func TestPlaceOrder_InactiveOrUnknownUser(t *testing.T) {
    placer := &fakePlacer{}
    e, _ := newOrderServer(t, placer)

    rec := do(t, e, http.MethodPost, "/v1/orders", 8, `{"tickets":[]}`)
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = do(t, e, http.MethodPost, "/v1/orders", 99, `{"tickets":[]}`)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Nil(t, placer.gotReqs)
}

func TestPlaceOrder_BadBody(t *testing.T) {
    e, _ := newOrderServer(t, &fakePlacer{})
    rec := do(t, e, http.MethodPost, "/v1/orders", 7, `{"tickets":`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_OwnershipAndList(t *testing.T) {
    e, _ := newOrderServer(t, &fakePlacer{})

    rec := do(t, e, http.MethodGet, "/v1/orders/42", 7, "")
    assert.Equal(t, http.StatusOK, rec.Code)

    rec = do(t, e, http.MethodGet, "/v1/orders/42", 8, "")
    assert.Equal(t, http.StatusNotFound, rec.Code)

    rec = do(t, e, http.MethodGet, "/v1/orders/abc", 7, "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = do(t, e, http.MethodGet, "/v1/orders", 7, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"order_id":42`)
}

func TestMe(t *testing.T) {
    e, _ := newOrderServer(t, &fakePlacer{})
    rec := do(t, e, http.MethodGet, "/v1/me", 7, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"email":"a@example.com"`)
}

func TestRepoErrorHidesDriverErrors(t *testing.T) {
    logger, hook := logtest.NewNullLogger()
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

    require.NoError(t, repoError(c, logger, context.Canceled, "flight"))
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.JSONEq(t, `{"error":"db error"}`, rec.Body.String())
    require.NotNil(t, hook.LastEntry())
    assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
