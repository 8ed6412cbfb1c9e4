package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/queue"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
	"github.com/iliyamo/concert-ticket-reservation/internal/service"
	"github.com/iliyamo/concert-ticket-reservation/internal/utils"
)

// ReservationHandler serves the reservation write and read paths.  The
// write path delegates to the ledger, the only component allowed to
// move seat counts; the read path never locks.
type ReservationHandler struct {
	Ledger       *service.ReservationLedger
	Reservations *repository.ReservationRepo
	// PublishEvents disables the post-commit broker publish when
	// false; tests and broker-less deployments turn it off.
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(ledger *service.ReservationLedger, reservations *repository.ReservationRepo) *ReservationHandler {
	if ledger == nil || reservations == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Ledger: ledger, Reservations: reservations, PublishEvents: true}
}

type reserveReq struct {
	ConcertID uint64 `json:"concert_id"`
	Status    string `json:"status"` // RESERVED | CANCELED
}

// ReserveOrCancel handles POST /v1/reservations.  One call records one
// transition: RESERVED takes a seat, CANCELED returns one.  The ledger
// either commits the whole transition or leaves the counters and the
// history untouched.
func (h *ReservationHandler) ReserveOrCancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ConcertID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "concert_id required"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be RESERVED or CANCELED"})
	}

	out, err := h.Ledger.ReserveOrCancel(c.Request().Context(), userID, req.ConcertID, status)
	if err != nil {
		switch err {
		case repository.ErrConcertNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		case repository.ErrNoActiveReservation:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "you do not have an active reservation to cancel"})
		case repository.ErrAlreadyInStatus:
			if status == model.StatusReserved {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already reserved this concert"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already canceled this concert"})
		case repository.ErrNoSeatsAvailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough seats available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}

	if h.PublishEvents {
		// Best-effort: a broker outage never fails a committed reservation.
		_ = service.PublishReservationRecorded(c.Request().Context(), queue.ReservationRecordedEvent{
			ReservationID:  out.Reservation.ID,
			UserID:         out.Reservation.UserID,
			ConcertID:      out.Concert.ID,
			ConcertName:    out.Concert.Name,
			Status:         out.Reservation.Status,
			AvailableSeats: out.Concert.AvailableSeats,
			TotalSeats:     out.Concert.TotalSeats,
			RecordedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}

	message := "the concert reservation was successful"
	if status == model.StatusCanceled {
		message = "the concert has been successfully canceled"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// List handles GET /v1/reservations: the filtered, paginated history
// listing.  ADMIN callers see every row and may filter by user name,
// user email, concert name and status; USER callers are always pinned
// to their own rows no matter what filters they send.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, err := getRole(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	page, pageSize = utils.NormalizePaging(page, pageSize)

	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be RESERVED or CANCELED"})
	}

	q := repository.ReservationSearchQuery{
		UserName:    strings.TrimSpace(c.QueryParam("userName")),
		UserEmail:   strings.TrimSpace(c.QueryParam("userEmail")),
		ConcertName: strings.TrimSpace(c.QueryParam("concertName")),
		Status:      status,
		Page:        page,
		PageSize:    pageSize,
	}
	// self-scoping is mandatory for the USER role
	if role != model.RoleAdmin {
		q.ForUserID = userID
	}

	rows, total, err := h.Reservations.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, utils.NewPage(rows, total, page, pageSize))
}
