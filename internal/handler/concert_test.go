package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticket-reservation/internal/handler"
	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
)

func newConcertHandler(t *testing.T) (*handler.ConcertHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handler.NewConcertHandler(repository.NewConcertRepo(db)), mock
}

func concertContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(9))
	c.Set("role", model.RoleAdmin)
	return c, rec
}

func TestConcertCreate_Success(t *testing.T) {
	h, mock := newConcertHandler(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO concerts").
		WithArgs("concert A", "enjoy", 250, 250, 9).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM concerts WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "total_seats", "available_seats",
			"created_by", "created_at", "updated_at",
		}).AddRow(3, "concert A", "enjoy", 250, 250, 9, now, now))

	c, rec := concertContext(t, http.MethodPost, "/v1/concerts",
		`{"name":"concert A","description":"enjoy","seat":250}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Message string `json:"message"`
		Concert struct {
			ID             uint64 `json:"id"`
			Seat           uint32 `json:"seat"`
			AvailableSeats uint32 `json:"available_seats"`
		} `json:"concert"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "create concert successful", body.Message)
	assert.Equal(t, uint64(3), body.Concert.ID)
	assert.Equal(t, uint32(250), body.Concert.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertCreate_ValidatesInput(t *testing.T) {
	h, _ := newConcertHandler(t)

	longName := strings.Repeat("a", 221)
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"description":"x","seat":10}`},
		{"name too long", `{"name":"` + longName + `","seat":10}`},
		{"zero seats", `{"name":"concert A","seat":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := concertContext(t, http.MethodPost, "/v1/concerts", tc.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestConcertCreate_DuplicateName(t *testing.T) {
	h, mock := newConcertHandler(t)

	mock.ExpectExec("INSERT INTO concerts").
		WillReturnError(assertableDuplicateErr{})

	c, rec := concertContext(t, http.MethodPost, "/v1/concerts",
		`{"name":"concert A","seat":10}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "concert name already in use, please choose another name", body["error"])
}

// assertableDuplicateErr mimics the MySQL duplicate-key error text.
type assertableDuplicateErr struct{}

func (assertableDuplicateErr) Error() string {
	return "Error 1062 (23000): Duplicate entry 'concert A' for key 'concerts.name'"
}

func TestConcertDelete_NotFound(t *testing.T) {
	h, mock := newConcertHandler(t)

	mock.ExpectExec("DELETE FROM concerts").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/concerts/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConcertList_SeatFilterMustBeNumeric(t *testing.T) {
	h, _ := newConcertHandler(t)

	c, rec := concertContext(t, http.MethodGet, "/v1/concerts?seat=lots", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
