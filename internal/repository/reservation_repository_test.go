package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
)

func newReservationRepo(t *testing.T) (*repository.ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewReservationRepo(db), mock
}

func detailColumns() []string {
	return []string{
		"id", "concert_id", "concert_name", "user_id", "user_name",
		"user_email", "status", "created_at",
	}
}

func TestReservationSearch_SelfScoped(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery("DATE_FORMAT").
		WithArgs(7, 10, 0).
		WillReturnRows(sqlmock.NewRows(detailColumns()).
			AddRow(12, 1, "concert A", 7, "user A", "a@example.com", model.StatusReserved, "2026-08-30 10:00:00"))

	out, total, err := repo.Search(context.Background(), repository.ReservationSearchQuery{
		ForUserID: 7, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, uint64(7), out[0].UserID)
	assert.Equal(t, "concert A", out[0].ConcertName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationSearch_CombinedFilters(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%ali%", "%@example.com%", "%rock%", model.StatusCanceled).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery("DATE_FORMAT").
		WithArgs("%ali%", "%@example.com%", "%rock%", model.StatusCanceled, 10, 0).
		WillReturnRows(sqlmock.NewRows(detailColumns()))

	out, total, err := repo.Search(context.Background(), repository.ReservationSearchQuery{
		UserName:    "Ali",
		UserEmail:   "@example.com",
		ConcertName: "Rock",
		Status:      model.StatusCanceled,
		Page:        1,
		PageSize:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationSearch_SecondPage(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(5))
	mock.ExpectQuery("DATE_FORMAT").
		WithArgs(3, 3).
		WillReturnRows(sqlmock.NewRows(detailColumns()).
			AddRow(2, 1, "concert A", 4, "user D", "d@example.com", model.StatusReserved, "2026-08-29 09:00:00").
			AddRow(1, 1, "concert A", 5, "user E", "e@example.com", model.StatusReserved, "2026-08-29 08:00:00"))

	out, total, err := repo.Search(context.Background(), repository.ReservationSearchQuery{
		Page: 2, PageSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, out, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
