package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/concert-ticket-reservation/internal/model"
)

// ConcertRepo manages persistence for concerts.  The available_seats
// column is the only mutable shared state in the system; every write
// to it happens through the *Tx methods below while the row is held
// under an exclusive lock, so plain (non-Tx) methods never touch it.
type ConcertRepo struct {
	db *sql.DB
}

// NewConcertRepo returns a new ConcertRepo bound to the given database.
func NewConcertRepo(db *sql.DB) *ConcertRepo { return &ConcertRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ConcertRepo) DB() *sql.DB { return r.db }

// Create inserts a new concert.  available_seats starts equal to
// total_seats.  The generated ID and DB-default timestamps are
// populated on the given Concert.  A duplicate name is reported as
// ErrConcertNameExists.
func (r *ConcertRepo) Create(ctx context.Context, c *model.Concert) error {
	const q = `INSERT INTO concerts (name, description, total_seats, available_seats, created_by)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.TotalSeats, c.TotalSeats, c.CreatedBy)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConcertNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	c.AvailableSeats = c.TotalSeats
	// Query back the row to populate timestamps and defaults
	const sel = `SELECT id, name, description, total_seats, available_seats, created_by, created_at, updated_at
	             FROM concerts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(
		&c.ID, &c.Name, &c.Description, &c.TotalSeats, &c.AvailableSeats,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
}

// GetByID fetches a concert without locking.  Returns
// ErrConcertNotFound when the id does not resolve.
func (r *ConcertRepo) GetByID(ctx context.Context, id uint64) (model.Concert, error) {
	const q = `SELECT id, name, description, total_seats, available_seats, created_by, created_at, updated_at
	           FROM concerts WHERE id = ?`
	var c model.Concert
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.TotalSeats, &c.AvailableSeats,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return c, ErrConcertNotFound
	}
	return c, err
}

// GetForUpdateTx loads a concert row with an exclusive row lock inside
// the given transaction.  Concurrent callers targeting the same
// concert block here until the holder commits or rolls back, then
// re-read the committed counters.  Returns ErrConcertNotFound when
// the id does not resolve.
func (r *ConcertRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Concert, error) {
	const q = `SELECT id, name, description, total_seats, available_seats, created_by, created_at, updated_at
	           FROM concerts WHERE id = ? FOR UPDATE`
	var c model.Concert
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.TotalSeats, &c.AvailableSeats,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return c, ErrConcertNotFound
	}
	return c, err
}

// UpdateAvailableSeatsTx persists a new available seat count for a
// concert within the caller's transaction.  The caller must hold the
// row lock obtained via GetForUpdateTx.
func (r *ConcertRepo) UpdateAvailableSeatsTx(ctx context.Context, tx *sql.Tx, id uint64, available uint32) error {
	const q = `UPDATE concerts SET available_seats = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, available, id)
	return err
}

// Delete removes a concert by id.  Reservation history rows cascade
// via the foreign key.  Returns ErrConcertNotFound when nothing was
// deleted.
func (r *ConcertRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM concerts WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConcertNotFound
	}
	return nil
}

// ConcertSearchQuery defines filters & pagination for listing concerts.
type ConcertSearchQuery struct {
	Name        string
	Description string
	Seat        uint32
	Page        int
	PageSize    int
}

// Search returns a page of concerts matching the query plus the total
// number of matches.  Name and Description are substring matches;
// Seat, when non-zero, matches total_seats exactly.
func (r *ConcertRepo) Search(ctx context.Context, q ConcertSearchQuery) ([]model.Concert, int64, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.Description != "" {
		where = append(where, "LOWER(description) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Description)+"%")
	}
	if q.Seat > 0 {
		where = append(where, "total_seats = ?")
		args = append(args, q.Seat)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM concerts WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT id, name, description, total_seats, available_seats, created_by, created_at, updated_at
		FROM concerts
		WHERE ` + cond + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Concert, 0, limit)
	for rows.Next() {
		var c model.Concert
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.TotalSeats, &c.AvailableSeats,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
