// Package service contains the reservation ledger, the single writer
// of concert seat counts, and the publisher for recorded-reservation
// events.
package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
)

// ReservationLedger owns every mutation of a concert's available seat
// count.  Each ReserveOrCancel call runs as one transaction: the pair's
// latest history row is checked, the concert row is locked, the seat
// counter is moved by exactly one, and a new history row is appended.
// Either all of that commits or none of it does, so the counter never
// leaves [0, total_seats] and the history never carries two consecutive
// equal statuses for the same pair.
type ReservationLedger struct {
	Concerts     *repository.ConcertRepo
	Reservations *repository.ReservationRepo
}

// NewReservationLedger constructs a ledger over the two repositories.
// Both must be bound to the same database.
func NewReservationLedger(concerts *repository.ConcertRepo, reservations *repository.ReservationRepo) *ReservationLedger {
	if concerts == nil || reservations == nil {
		panic("nil repository passed to NewReservationLedger")
	}
	return &ReservationLedger{Concerts: concerts, Reservations: reservations}
}

// LedgerResult reports a committed transition: the appended history row
// and the concert as it stood after the seat update.
type LedgerResult struct {
	Reservation model.Reservation
	Concert     model.Concert
}

// ReserveOrCancel records a transition into the requested status for
// (userID, concertID).  status must be model.StatusReserved or
// model.StatusCanceled; callers validate before invoking.
//
// Failure modes, each rolling back the whole transaction:
//   - repository.ErrNoActiveReservation: cancel with no history.
//   - repository.ErrAlreadyInStatus: latest row already has status.
//   - repository.ErrConcertNotFound: concert id unknown.
//   - repository.ErrNoSeatsAvailable: reserve against a sold-out concert.
//
// Concurrent calls against the same concert serialise on the row lock
// taken by GetForUpdateTx; each blocked caller re-reads the committed
// counter once the lock is released, so two racers for the last seat
// cannot both succeed.
func (l *ReservationLedger) ReserveOrCancel(ctx context.Context, userID, concertID uint64, status string) (LedgerResult, error) {
	var out LedgerResult

	tx, err := l.Concerts.DB().BeginTx(ctx, nil)
	if err != nil {
		return out, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// check the latest transition for this pair
	last, err := l.Reservations.LatestByUserAndConcertTx(ctx, tx, userID, concertID)
	switch {
	case err == sql.ErrNoRows:
		if status == model.StatusCanceled {
			return out, repository.ErrNoActiveReservation
		}
	case err != nil:
		return out, err
	case last.Status == status:
		// double reserve or double cancel
		return out, repository.ErrAlreadyInStatus
	}

	// lock the concert row; concurrent writers for the same concert
	// queue up here
	concert, err := l.Concerts.GetForUpdateTx(ctx, tx, concertID)
	if err != nil {
		return out, err
	}

	if status == model.StatusReserved {
		if concert.AvailableSeats == 0 {
			return out, repository.ErrNoSeatsAvailable
		}
		concert.AvailableSeats--
	} else {
		// every CANCELED is paired with a prior RESERVED decrement, so
		// the increment cannot push the counter past total_seats
		concert.AvailableSeats++
	}

	if err := l.Concerts.UpdateAvailableSeatsTx(ctx, tx, concert.ID, concert.AvailableSeats); err != nil {
		return out, err
	}

	res := model.Reservation{
		UserID:    userID,
		ConcertID: concertID,
		Status:    status,
	}
	if err := l.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return out, err
	}

	if err := tx.Commit(); err != nil {
		return out, err
	}
	committed = true

	out.Reservation = res
	out.Concert = concert
	return out, nil
}
