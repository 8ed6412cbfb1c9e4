package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
)

func newConcertRepo(t *testing.T) (*repository.ConcertRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewConcertRepo(db), mock
}

func concertColumns() []string {
	return []string{
		"id", "name", "description", "total_seats", "available_seats",
		"created_by", "created_at", "updated_at",
	}
}

func TestConcertCreate_StartsWithAllSeatsAvailable(t *testing.T) {
	repo, mock := newConcertRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO concerts").
		WithArgs("concert A", "enjoy", 250, 250, 9).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM concerts WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(concertColumns()).
			AddRow(3, "concert A", "enjoy", 250, 250, 9, now, now))

	c := model.Concert{Name: "concert A", Description: "enjoy", TotalSeats: 250, CreatedBy: 9}
	require.NoError(t, repo.Create(context.Background(), &c))
	assert.Equal(t, uint64(3), c.ID)
	assert.Equal(t, uint32(250), c.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertCreate_DuplicateName(t *testing.T) {
	repo, mock := newConcertRepo(t)

	mock.ExpectExec("INSERT INTO concerts").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'concert A' for key 'concerts.name'"))

	c := model.Concert{Name: "concert A", TotalSeats: 10, CreatedBy: 9}
	err := repo.Create(context.Background(), &c)
	assert.ErrorIs(t, err, repository.ErrConcertNameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertDelete_Unknown(t *testing.T) {
	repo, mock := newConcertRepo(t)

	mock.ExpectExec("DELETE FROM concerts").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrConcertNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertGetForUpdateTx_Unknown(t *testing.T) {
	repo, mock := newConcertRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(concertColumns()))
	mock.ExpectRollback()

	tx, err := repo.DB().Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.GetForUpdateTx(context.Background(), tx, 42)
	assert.ErrorIs(t, err, repository.ErrConcertNotFound)
}

func TestConcertSearch_FiltersAndPaginates(t *testing.T) {
	repo, mock := newConcertRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%rock%", 250).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("%rock%", 250, 3, 3).
		WillReturnRows(sqlmock.NewRows(concertColumns()).
			AddRow(5, "rock night", "loud", 250, 100, 9, now, now).
			AddRow(4, "rock day", "louder", 250, 0, 9, now, now))

	out, total, err := repo.Search(context.Background(), repository.ConcertSearchQuery{
		Name: "Rock", Seat: 250, Page: 2, PageSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, out, 2)
	assert.Equal(t, "rock night", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
