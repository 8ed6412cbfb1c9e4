package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
	"github.com/iliyamo/concert-ticket-reservation/internal/service"
)

func newLedger(t *testing.T) (*service.ReservationLedger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ledger := service.NewReservationLedger(
		repository.NewConcertRepo(db),
		repository.NewReservationRepo(db),
	)
	return ledger, mock
}

func concertRow(available, total uint32) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "total_seats", "available_seats",
		"created_by", "created_at", "updated_at",
	}).AddRow(1, "concert A", "enjoy", total, available, 9, now, now)
}

func historyRow(status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "user_id", "concert_id", "status", "created_at", "updated_at",
	}).AddRow(5, 7, 1, status, now, now)
}

func TestReserveOrCancel_ReserveDecrementsAndAppends(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(1).
		WillReturnRows(concertRow(100, 100))
	mock.ExpectExec("UPDATE concerts SET available_seats").
		WithArgs(99, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(7, 1, model.StatusReserved).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	out, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusReserved)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), out.Reservation.ID)
	assert.Equal(t, model.StatusReserved, out.Reservation.Status)
	assert.Equal(t, uint32(99), out.Concert.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_CancelIncrementsAndAppends(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnRows(historyRow(model.StatusReserved))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(1).
		WillReturnRows(concertRow(99, 100))
	mock.ExpectExec("UPDATE concerts SET available_seats").
		WithArgs(100, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(7, 1, model.StatusCanceled).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	out, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, out.Reservation.Status)
	assert.Equal(t, uint32(100), out.Concert.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_CancelWithoutHistoryRollsBack(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusCanceled)
	assert.ErrorIs(t, err, repository.ErrNoActiveReservation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_DoubleReserveRollsBack(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnRows(historyRow(model.StatusReserved))
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusReserved)
	assert.ErrorIs(t, err, repository.ErrAlreadyInStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_DoubleCancelRollsBack(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnRows(historyRow(model.StatusCanceled))
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusCanceled)
	assert.ErrorIs(t, err, repository.ErrAlreadyInStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_SoldOutRollsBack(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(1).
		WillReturnRows(concertRow(0, 1))
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusReserved)
	assert.ErrorIs(t, err, repository.ErrNoSeatsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_UnknownConcertRollsBack(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 42).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 42, model.StatusReserved)
	assert.ErrorIs(t, err, repository.ErrConcertNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_InsertFailureRollsBackSeatUpdate(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations").
		WithArgs(7, 1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(1).
		WillReturnRows(concertRow(10, 10))
	mock.ExpectExec("UPDATE concerts SET available_seats").
		WithArgs(9, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(7, 1, model.StatusReserved).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusReserved)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveOrCancel_BeginFailureSurfaces(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := ledger.ReserveOrCancel(context.Background(), 7, 1, model.StatusReserved)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
