package model

import "time"

// Reservation status values.  A reservation row is a history entry,
// not a current-state cache: every successful reserve or cancel action
// appends a new row and rows are never updated or deleted afterwards.
// The most recent row for a (user, concert) pair determines the pair's
// current state, and two consecutive rows for the same pair never carry
// the same status.
const (
	StatusReserved = "RESERVED"
	StatusCanceled = "CANCELED"
)

// ValidStatus reports whether s is a recognised reservation status.
func ValidStatus(s string) bool {
	return s == StatusReserved || s == StatusCanceled
}

// Reservation records one reserve or cancel transition for a user and
// a concert.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the transition belongs to.
//  ConcertID – concert the transition targets.
//  Status    – RESERVED or CANCELED.
//  CreatedAt – creation timestamp; ordering key of the history.
//  UpdatedAt – last update timestamp (equal to CreatedAt in practice).
type Reservation struct {
	ID        uint64    // reservations.id
	UserID    uint64    // reservations.user_id
	ConcertID uint64    // reservations.concert_id
	Status    string    // reservations.status
	CreatedAt time.Time // reservations.created_at
	UpdatedAt time.Time // reservations.updated_at
}
