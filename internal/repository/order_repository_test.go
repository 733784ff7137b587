package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-booking/internal/model"
)

func TestOrderRepo_CreateTxReadsBackTimestamp(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO orders`).WithArgs(7).WillReturnResult(sqlmock.NewResult(42, 1))
    mock.ExpectQuery(`SELECT id, user_id, created_at FROM orders`).WithArgs(42).
        WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(42, 7, created))

    tx, err := db.Begin()
    require.NoError(t, err)
    o, err := NewOrderRepo(db).CreateTx(context.Background(), tx, 7)
    require.NoError(t, err)
    assert.Equal(t, &model.Order{ID: 42, UserID: 7, CreatedAt: created}, o)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_CreateTicketTxDuplicateIsConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO tickets`).WithArgs(1, 1, 100, 42).
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

    tx, err := db.Begin()
    require.NoError(t, err)
    err = NewOrderRepo(db).CreateTicketTx(context.Background(), tx, &model.Ticket{Row: 1, Seat: 1, FlightID: 100, OrderID: 42})
    assert.ErrorIs(t, err, ErrConflict)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListByUserGroupsTickets(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    t1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
    t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
    rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "seat_row", "seat", "flight_id"}).
        AddRow(9, 7, t1, 2, 3, 100).
        AddRow(9, 7, t1, 2, 4, 100).
        AddRow(5, 7, t0, nil, nil, nil)
    mock.ExpectQuery(`FROM orders o\s+LEFT JOIN tickets t`).WithArgs(7).WillReturnRows(rows)

    got, err := NewOrderRepo(db).ListByUser(context.Background(), 7)
    require.NoError(t, err)
    require.Len(t, got, 2)
    assert.Equal(t, uint64(9), got[0].OrderID)
    assert.Equal(t, []model.TicketView{{Row: 2, Seat: 3, Flight: 100}, {Row: 2, Seat: 4, Flight: 100}}, got[0].Tickets)
    assert.Equal(t, uint64(5), got[1].OrderID)
    assert.Empty(t, got[1].Tickets)
    assert.NotNil(t, got[1].Tickets)
}

func TestOrderRepo_GetByIDForUserOtherUser(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery(`SELECT id, user_id, created_at FROM orders WHERE id = \? AND user_id = \?`).
        WithArgs(9, 8).WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

    _, err = NewOrderRepo(db).GetByIDForUser(context.Background(), 9, 8)
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
