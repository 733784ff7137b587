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

func TestCrewRepo_CreateReusesFreedID(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery(`SELECT GET_LOCK`).WithArgs("idalloc:crews", sqlmock.AnyArg()).
        WillReturnRows(sqlmock.NewRows([]string{"GET_LOCK"}).AddRow(1))
    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT id FROM crews`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
    mock.ExpectExec(`INSERT INTO crews`).WithArgs(1, "Ann", "Lee").WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()
    mock.ExpectQuery(`SELECT RELEASE_LOCK`).WillReturnRows(sqlmock.NewRows([]string{"RELEASE_LOCK"}).AddRow(1))

    c := &model.Crew{FirstName: "Ann", LastName: "Lee"}
    require.NoError(t, NewCrewRepo(db, NewIDAllocator(db, time.Second)).Create(context.Background(), c))
    assert.Equal(t, uint64(1), c.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepo_CreateDuplicateNameIsConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery(`SELECT GET_LOCK`).WillReturnRows(sqlmock.NewRows([]string{"GET_LOCK"}).AddRow(1))
    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT id FROM crews`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
    mock.ExpectExec(`INSERT INTO crews`).WithArgs(2, "Ann", "Lee").
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Ann-Lee' for key 'unique_crew'"})
    mock.ExpectRollback()
    mock.ExpectQuery(`SELECT RELEASE_LOCK`).WillReturnRows(sqlmock.NewRows([]string{"RELEASE_LOCK"}).AddRow(1))

    c := &model.Crew{FirstName: "Ann", LastName: "Lee"}
    err = NewCrewRepo(db, NewIDAllocator(db, time.Second)).Create(context.Background(), c)
    assert.ErrorIs(t, err, ErrConflict)
    assert.Zero(t, c.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepo_DeleteDropsAssignments(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`DELETE FROM flight_crews WHERE crew_id = \?`).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 3))
    mock.ExpectExec(`DELETE FROM crews WHERE id = \?`).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    require.NoError(t, NewCrewRepo(db, nil).Delete(context.Background(), 4))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepo_DeleteUnknownRollsBack(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec(`DELETE FROM flight_crews`).WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectExec(`DELETE FROM crews`).WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectRollback()

    err = NewCrewRepo(db, nil).Delete(context.Background(), 9)
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
