package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
	"github.com/iliyamo/concert-ticket-reservation/internal/utils"
)

// maxNameLen bounds concert name and description lengths, matching
// the column definitions.
const maxNameLen = 220

// ConcertHandler serves concert management and browsing.  Creation and
// deletion are ADMIN-only (enforced by route middleware); listing is
// open to any authenticated caller.
type ConcertHandler struct {
	Concerts *repository.ConcertRepo
}

// NewConcertHandler constructs a ConcertHandler.
func NewConcertHandler(concerts *repository.ConcertRepo) *ConcertHandler {
	if concerts == nil {
		panic("nil repository passed to NewConcertHandler")
	}
	return &ConcertHandler{Concerts: concerts}
}

type createConcertReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Seat        uint32 `json:"seat"`
}

type concertResp struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Seat           uint32 `json:"seat"`
	AvailableSeats uint32 `json:"available_seats"`
	CreatedAt      string `json:"created_at"`
}

func toConcertResp(c model.Concert) concertResp {
	return concertResp{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Seat:           c.TotalSeats,
		AvailableSeats: c.AvailableSeats,
		CreatedAt:      c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// Create handles POST /v1/concerts.  The seat capacity must be at
// least 1 and becomes both total and available count; the creating
// admin is recorded on the row.
func (h *ConcertHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createConcertReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || len(req.Name) > maxNameLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required (max 220 chars)"})
	}
	if len(req.Description) > maxNameLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description too long (max 220 chars)"})
	}
	if req.Seat < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat must be at least 1"})
	}

	concert := model.Concert{
		Name:        req.Name,
		Description: req.Description,
		TotalSeats:  req.Seat,
		CreatedBy:   userID,
	}
	if err := h.Concerts.Create(c.Request().Context(), &concert); err != nil {
		if err == repository.ErrConcertNameExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "concert name already in use, please choose another name"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create concert failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "create concert successful",
		"concert": toConcertResp(concert),
	})
}

// List handles GET /v1/concerts with optional name/description
// substring filters, an exact seat filter, and pagination.
func (h *ConcertHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	page, pageSize = utils.NormalizePaging(page, pageSize)

	seat := uint64(0)
	if s := c.QueryParam("seat"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat filter"})
		}
		seat = n
	}

	q := repository.ConcertSearchQuery{
		Name:        strings.TrimSpace(c.QueryParam("name")),
		Description: strings.TrimSpace(c.QueryParam("description")),
		Seat:        uint32(seat),
		Page:        page,
		PageSize:    pageSize,
	}
	concerts, total, err := h.Concerts.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list concerts failed"})
	}

	items := make([]concertResp, 0, len(concerts))
	for _, con := range concerts {
		items = append(items, toConcertResp(con))
	}
	return c.JSON(http.StatusOK, utils.NewPage(items, total, page, pageSize))
}

// Delete handles DELETE /v1/concerts/:id.  Reservation history rows
// for the concert cascade away with it.
func (h *ConcertHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	if err := h.Concerts.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrConcertNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete concert failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "delete concert successful"})
}
