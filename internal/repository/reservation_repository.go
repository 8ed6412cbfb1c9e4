package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
)

// ReservationRepo provides access to the append-only reservation
// history.  Rows are only ever inserted; the most recent row for a
// (user, concert) pair carries the pair's current state.  All writes
// happen through the *Tx methods so they participate in the ledger's
// transaction.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need to begin a
// transaction spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// LatestByUserAndConcertTx returns the most recent history row for the
// pair, inside the caller's transaction.  The id tie-break keeps the
// ordering deterministic when two rows share a created_at second.
// Returns sql.ErrNoRows when the pair has no history.
func (r *ReservationRepo) LatestByUserAndConcertTx(ctx context.Context, tx *sql.Tx, userID, concertID uint64) (model.Reservation, error) {
	const q = `SELECT id, user_id, concert_id, status, created_at, updated_at
	           FROM reservations
	           WHERE user_id = ? AND concert_id = ?
	           ORDER BY created_at DESC, id DESC
	           LIMIT 1`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, userID, concertID).Scan(
		&res.ID, &res.UserID, &res.ConcertID, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

// CreateTx appends a new history row within the caller's transaction.
// It populates the generated ID on the provided record.  The caller
// must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, concert_id, status) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.UserID, res.ConcertID, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ReservationSearchQuery defines filters & pagination for listing
// reservation history.  ForUserID, when non-zero, pins results to that
// user regardless of the other filters; handlers set it for USER-role
// callers so self-scoping is not optional.
type ReservationSearchQuery struct {
	UserName    string
	UserEmail   string
	ConcertName string
	Status      string
	ForUserID   uint64
	Page        int
	PageSize    int
}

// ReservationDetail is one row of the reservation listing: the history
// entry joined with the reserving user and the target concert.
type ReservationDetail struct {
	ID          uint64 `json:"id"`
	ConcertID   uint64 `json:"concert_id"`
	ConcertName string `json:"concert_name"`
	UserID      uint64 `json:"user_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// Search returns a page of reservation history rows matching the query
// plus the total number of matches.  Rows are ordered newest first.
// The read path never locks; it sees whatever the ledger last
// committed.
func (r *ReservationRepo) Search(ctx context.Context, q ReservationSearchQuery) ([]ReservationDetail, int64, error) {
	where := []string{}
	args := []any{}

	if q.ForUserID != 0 {
		where = append(where, "r.user_id = ?")
		args = append(args, q.ForUserID)
	}
	if q.UserName != "" {
		where = append(where, "LOWER(u.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.UserName)+"%")
	}
	if q.UserEmail != "" {
		where = append(where, "LOWER(u.email) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.UserEmail)+"%")
	}
	if q.ConcertName != "" {
		where = append(where, "LOWER(c.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.ConcertName)+"%")
	}
	if q.Status != "" {
		where = append(where, "r.status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM reservations r
		JOIN users u    ON u.id = r.user_id
		JOIN concerts c ON c.id = r.concert_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			r.id,
			r.concert_id,
			c.name AS concert_name,
			r.user_id,
			u.name AS user_name,
			u.email AS user_email,
			r.status,
			DATE_FORMAT(r.created_at, '%Y-%m-%d %T') AS created_at
		FROM reservations r
		JOIN users u    ON u.id = r.user_id
		JOIN concerts c ON c.id = r.concert_id
		WHERE ` + cond + `
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ReservationDetail, 0, limit)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(
			&d.ID,
			&d.ConcertID,
			&d.ConcertName,
			&d.UserID,
			&d.UserName,
			&d.UserEmail,
			&d.Status,
			&d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
