package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/repository"
)

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

const tripColumns = `id, checkout_id, sequence, depart_time, depart_odometer, COALESCE(depart_notes, ''),
	return_time, return_odometer, COALESCE(return_notes, ''), distance, created_on`

// Open starts a trip. The owning checkout row is locked so the open-trip
// check and the sequence assignment cannot race with a concurrent depart
// or a checkout close; sequences stay contiguous from 1.
func (r *tripRepository) Open(ctx context.Context, userID, checkoutID int32, departTime time.Time, odometer float64, notes string) (*domain.Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id int32
	err = tx.QueryRowContext(ctx, `SELECT id FROM checkouts WHERE id = $1 AND user_id = $2 AND active = true FOR UPDATE`, checkoutID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active checkout %d for user %d", domain.ErrNotFound, checkoutID, userID)
	}
	if err != nil {
		return nil, err
	}

	var tripOpen bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE checkout_id = $1 AND return_time IS NULL)`, checkoutID).Scan(&tripOpen)
	if err != nil {
		return nil, err
	}
	if tripOpen {
		return nil, fmt.Errorf("%w: checkout %d already has an open trip", domain.ErrConflict, checkoutID)
	}

	var count int32
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE checkout_id = $1`, checkoutID).Scan(&count)
	if err != nil {
		return nil, err
	}

	t := &domain.Trip{
		CheckoutID:     checkoutID,
		Sequence:       count + 1,
		DepartTime:     departTime,
		DepartOdometer: odometer,
		DepartNotes:    notes,
	}
	query := `INSERT INTO trips (checkout_id, sequence, depart_time, depart_odometer, depart_notes)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, t.CheckoutID, t.Sequence, t.DepartTime, t.DepartOdometer, t.DepartNotes).Scan(&t.ID, &t.CreatedOn)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: concurrent trip detected", domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Close finishes the open trip and records its distance. A return
// reading below the depart reading is rejected before anything is
// written; the original system stored negative distances silently.
func (r *tripRepository) Close(ctx context.Context, userID, checkoutID int32, returnTime time.Time, odometer float64, notes string) (*domain.Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t := &domain.Trip{}
	query := `SELECT t.id, t.checkout_id, t.sequence, t.depart_time, t.depart_odometer, COALESCE(t.depart_notes, ''), t.created_on
	          FROM trips t
	          JOIN checkouts c ON c.id = t.checkout_id
	          WHERE t.checkout_id = $1 AND c.user_id = $2 AND c.active = true AND t.return_time IS NULL
	          FOR UPDATE OF t`
	err = tx.QueryRowContext(ctx, query, checkoutID, userID).
		Scan(&t.ID, &t.CheckoutID, &t.Sequence, &t.DepartTime, &t.DepartOdometer, &t.DepartNotes, &t.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no open trip on checkout %d", domain.ErrNotFound, checkoutID)
	}
	if err != nil {
		return nil, err
	}

	distance := odometer - t.DepartOdometer
	if distance < 0 {
		return nil, fmt.Errorf("%w: return odometer %.2f below depart odometer %.2f", domain.ErrInvalidState, odometer, t.DepartOdometer)
	}

	_, err = tx.ExecContext(ctx, `UPDATE trips SET return_time = $1, return_odometer = $2, return_notes = $3, distance = $4 WHERE id = $5`,
		returnTime, odometer, notes, distance, t.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	t.ReturnTime = &returnTime
	t.ReturnOdometer = &odometer
	t.ReturnNotes = notes
	t.Distance = &distance
	return t, nil
}

func (r *tripRepository) ListByCheckout(ctx context.Context, checkoutID int32) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE checkout_id = $1 ORDER BY sequence`
	rows, err := r.db.QueryContext(ctx, query, checkoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.CheckoutID, &t.Sequence, &t.DepartTime, &t.DepartOdometer, &t.DepartNotes,
			&t.ReturnTime, &t.ReturnOdometer, &t.ReturnNotes, &t.Distance, &t.CreatedOn); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
