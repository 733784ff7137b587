package repository

import (
    "context"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-booking/internal/model"
)

func TestAircraftRepo_CreateTypeExistingIsConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec(`INSERT INTO aircraft_types`).WithArgs("M", "Medium").
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'M' for key 'PRIMARY'"})

    err = NewAircraftRepo(db).CreateType(context.Background(), &model.AircraftType{WTC: "M", Name: "Medium"})
    assert.ErrorIs(t, err, ErrConflict)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAircraftRepo_Create(t *testing.T) {
    a := model.Aircraft{Code: "A320", Model: "Airbus A320", Range: 6100, SeatRows: 30, SeatsInRow: 6, AircraftTypeWTC: "M"}
    cases := []struct {
        name string
        err  error
        want error
    }{
        {name: "ok"},
        {name: "existing code", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'A320'"}, want: ErrConflict},
        {name: "unknown type", err: &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, want: ErrNotFound},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            db, mock, err := sqlmock.New()
            require.NoError(t, err)
            defer db.Close()

            exec := mock.ExpectExec(`INSERT INTO aircraft`).WithArgs("A320", "Airbus A320", 6100, 30, 6, "M")
            if tc.err != nil {
                exec.WillReturnError(tc.err)
            } else {
                exec.WillReturnResult(sqlmock.NewResult(0, 1))
            }

            err = NewAircraftRepo(db).Create(context.Background(), &a)
            if tc.want == nil {
                assert.NoError(t, err)
            } else {
                assert.ErrorIs(t, err, tc.want)
            }
            assert.NoError(t, mock.ExpectationsWereMet())
        })
    }
}

func TestAircraftRepo_UpdateUnknownIsNotFound(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec(`UPDATE aircraft\s+SET`).WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectExec(`UPDATE aircraft_types SET`).WithArgs("H", "Heavy", "H").WillReturnResult(sqlmock.NewResult(0, 1))

    repo := NewAircraftRepo(db)
    err = repo.Update(context.Background(), "B777", &model.Aircraft{Code: "B777", AircraftTypeWTC: "H"})
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, repo.UpdateType(context.Background(), "H", &model.AircraftType{WTC: "H", Name: "Heavy"}))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAircraftRepo_DeleteReferencedIsConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec(`DELETE FROM aircraft_types WHERE wtc = \?`).WithArgs("M").
        WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
    mock.ExpectExec(`DELETE FROM aircraft WHERE aircraft_code = \?`).WithArgs("ZZZ").
        WillReturnResult(sqlmock.NewResult(0, 0))

    repo := NewAircraftRepo(db)
    assert.ErrorIs(t, repo.DeleteType(context.Background(), "M"), ErrConflict)
    assert.ErrorIs(t, repo.Delete(context.Background(), "ZZZ"), ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
