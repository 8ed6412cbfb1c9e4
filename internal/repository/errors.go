// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// reservation ledger and the HTTP handlers to distinguish between
// failure scenarios without parsing driver error text. Each sentinel
// maps to one stable user-facing message and HTTP status in the
// handler layer.
package repository

import "errors"

// ErrConcertNotFound is returned when a concert id does not resolve to
// a row. Handlers translate this into an HTTP 404 response.
var ErrConcertNotFound = errors.New("concert not found")

// ErrConcertNameExists is returned when an insert violates the unique
// constraint on the concert name. Handlers translate this into 400.
var ErrConcertNameExists = errors.New("concert name already in use")

// ErrNoActiveReservation is returned when a cancel is requested for a
// (user, concert) pair that has no reservation history at all.
// Handlers translate this into 404.
var ErrNoActiveReservation = errors.New("no active reservation to cancel")

// ErrAlreadyInStatus is returned when the most recent history row for
// the pair already carries the requested status, i.e. a double reserve
// or a double cancel. Handlers translate this into 400.
var ErrAlreadyInStatus = errors.New("reservation already in requested status")

// ErrNoSeatsAvailable is returned when a reserve finds the concert's
// available seat count at zero. Handlers translate this into 400.
var ErrNoSeatsAvailable = errors.New("not enough seats available")

// ErrEmailExists is returned when a registration collides with an
// existing account email. Handlers translate this into 409.
var ErrEmailExists = errors.New("email already exists")
