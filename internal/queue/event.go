// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationRecordedEvent is published after the ledger commits a
// reserve or cancel transition.  It carries enough information for
// downstream consumers to log, notify, or feed analytics without
// querying the primary database.
type ReservationRecordedEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	ConcertID      uint64 `json:"concert_id"`
	ConcertName    string `json:"concert_name"`
	Status         string `json:"status"`
	AvailableSeats uint32 `json:"available_seats"`
	TotalSeats     uint32 `json:"total_seats"`
	RecordedAt     string `json:"recorded_at"`
}
