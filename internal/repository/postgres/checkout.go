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

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

const checkoutColumns = `id, user_id, vehicle_id, start_time, start_odometer, COALESCE(start_notes, ''),
	end_time, end_odometer, COALESCE(end_notes, ''), active, created_on, updated_on`

// Open creates an active checkout inside one transaction. The vehicle
// row is locked first so two concurrent opens for the same vehicle
// serialize; the partial unique indexes on checkouts(vehicle_id) and
// checkouts(user_id) WHERE active remain the authoritative guard, so a
// race that slips past the reads still ends in exactly one success.
func (r *checkoutRepository) Open(ctx context.Context, c *domain.Checkout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx, `SELECT active FROM vehicles WHERE id = $1 FOR UPDATE`, c.VehicleID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, c.VehicleID)
	}
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, c.VehicleID)
	}

	var vehicleBusy bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM checkouts WHERE vehicle_id = $1 AND active = true)`, c.VehicleID).Scan(&vehicleBusy)
	if err != nil {
		return err
	}
	if vehicleBusy {
		return fmt.Errorf("%w: vehicle %d already checked out", domain.ErrConflict, c.VehicleID)
	}

	var userBusy bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM checkouts WHERE user_id = $1 AND active = true)`, c.UserID).Scan(&userBusy)
	if err != nil {
		return err
	}
	if userBusy {
		return fmt.Errorf("%w: user %d already has an active checkout", domain.ErrConflict, c.UserID)
	}

	query := `INSERT INTO checkouts (user_id, vehicle_id, start_time, start_odometer, start_notes, active)
	          VALUES ($1, $2, $3, $4, $5, true) RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query, c.UserID, c.VehicleID, c.StartTime, c.StartOdometer, c.StartNotes).
		Scan(&c.ID, &c.CreatedOn, &c.UpdatedOn)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: concurrent checkout detected", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	c.Active = true

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: concurrent checkout detected", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// Close devolves the vehicle. The checkout row is locked, the end
// reading must not fall below the start reading, the open-trip check
// runs under that lock, and the vehicle's current odometer is updated
// in the same transaction so a failure leaves nothing half written.
func (r *checkoutRepository) Close(ctx context.Context, userID, checkoutID int32, endTime time.Time, odometer float64, notes string) (*domain.Checkout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := &domain.Checkout{}
	query := `SELECT ` + checkoutColumns + ` FROM checkouts
	          WHERE id = $1 AND user_id = $2 AND active = true FOR UPDATE`
	err = scanCheckout(tx.QueryRowContext(ctx, query, checkoutID, userID), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active checkout %d for user %d", domain.ErrNotFound, checkoutID, userID)
	}
	if err != nil {
		return nil, err
	}

	if odometer < c.StartOdometer {
		return nil, fmt.Errorf("%w: end odometer %.2f below start odometer %.2f", domain.ErrInvalidInput, odometer, c.StartOdometer)
	}

	var tripOpen bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE checkout_id = $1 AND return_time IS NULL)`, checkoutID).Scan(&tripOpen)
	if err != nil {
		return nil, err
	}
	if tripOpen {
		return nil, fmt.Errorf("%w: checkout %d has an open trip", domain.ErrConflict, checkoutID)
	}

	_, err = tx.ExecContext(ctx, `UPDATE checkouts SET active = false, end_time = $1, end_odometer = $2, end_notes = $3, updated_on = $4 WHERE id = $5`,
		endTime, odometer, notes, endTime, checkoutID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE vehicles SET current_odometer = $1 WHERE id = $2`, odometer, c.VehicleID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	c.Active = false
	c.EndTime = &endTime
	c.EndOdometer = &odometer
	c.EndNotes = notes
	c.UpdatedOn = endTime
	return c, nil
}

func (r *checkoutRepository) GetByID(ctx context.Context, id int32) (*domain.Checkout, error) {
	c := &domain.Checkout{}
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1`
	err := scanCheckout(r.db.QueryRowContext(ctx, query, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: checkout %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *checkoutRepository) GetActiveByUser(ctx context.Context, userID int32) (*domain.Checkout, error) {
	c := &domain.Checkout{}
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE user_id = $1 AND active = true`
	err := scanCheckout(r.db.QueryRowContext(ctx, query, userID), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active checkout for user %d", domain.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *checkoutRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE user_id = $1 ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkouts []domain.Checkout
	for rows.Next() {
		var c domain.Checkout
		if err := scanCheckout(rows, &c); err != nil {
			return nil, err
		}
		checkouts = append(checkouts, c)
	}
	return checkouts, rows.Err()
}

// UpdateOdometers applies an admin correction. The vehicle's current
// odometer follows the new end reading only when this checkout is the
// vehicle's most recent closure; older history edits leave it alone.
func (r *checkoutRepository) UpdateOdometers(ctx context.Context, checkoutID int32, startOdometer, endOdometer float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var vehicleID int32
	var endTime sql.NullTime
	err = tx.QueryRowContext(ctx, `SELECT vehicle_id, end_time FROM checkouts WHERE id = $1 FOR UPDATE`, checkoutID).Scan(&vehicleID, &endTime)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: checkout %d", domain.ErrNotFound, checkoutID)
	}
	if err != nil {
		return err
	}
	if !endTime.Valid {
		return fmt.Errorf("%w: checkout %d was never closed", domain.ErrInvalidState, checkoutID)
	}

	_, err = tx.ExecContext(ctx, `UPDATE checkouts SET start_odometer = $1, end_odometer = $2, updated_on = NOW() WHERE id = $3`,
		startOdometer, endOdometer, checkoutID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE vehicles SET current_odometer = $1
	          WHERE id = $2 AND NOT EXISTS (
	              SELECT 1 FROM checkouts c2
	              WHERE c2.vehicle_id = $2 AND c2.active = false AND c2.end_time > $3
	          )`, endOdometer, vehicleID, endTime.Time)
	if err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckout(row rowScanner, c *domain.Checkout) error {
	return row.Scan(&c.ID, &c.UserID, &c.VehicleID, &c.StartTime, &c.StartOdometer, &c.StartNotes,
		&c.EndTime, &c.EndOdometer, &c.EndNotes, &c.Active, &c.CreatedOn, &c.UpdatedOn)
}
