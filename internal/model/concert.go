package model

import "time"

// Concert represents a single event with an aggregate seat pool.  The
// pool is tracked by two counters: TotalSeats is fixed at creation and
// AvailableSeats moves between 0 and TotalSeats as reservations are
// recorded and cancelled.  AvailableSeats is mutated exclusively by the
// reservation ledger under a row lock; no other code path writes it.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – unique concert name, bounded length.
//  Description    – human readable description, bounded length.
//  TotalSeats     – total capacity, at least 1, immutable after creation.
//  AvailableSeats – unsold seat count, always within [0, TotalSeats].
//  CreatedBy      – id of the admin account that created the concert.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Concert struct {
	ID             uint64    // concerts.id
	Name           string    // concerts.name
	Description    string    // concerts.description
	TotalSeats     uint32    // concerts.total_seats
	AvailableSeats uint32    // concerts.available_seats
	CreatedBy      uint64    // concerts.created_by
	CreatedAt      time.Time // concerts.created_at
	UpdatedAt      time.Time // concerts.updated_at
}
