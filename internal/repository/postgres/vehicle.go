package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, plate, make, model, year, current_odometer, active, created_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (plate, make, model, year, current_odometer, active)
	          VALUES ($1, $2, $3, $4, $5, true) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, v.Plate, v.Make, v.Model, v.Year, v.CurrentOdometer).Scan(&v.ID, &v.CreatedOn)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: plate %q already registered", domain.ErrConflict, v.Plate)
	}
	if err != nil {
		return err
	}
	v.Active = true
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Plate, &v.Make, &v.Model, &v.Year, &v.CurrentOdometer, &v.Active, &v.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE active = true ORDER BY plate`
	return r.list(ctx, query)
}

// ListAvailable excludes vehicles with an active checkout by any user:
// a vehicle that is out is unavailable to everyone until devolved.
func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v
	          WHERE v.active = true
	            AND NOT EXISTS (SELECT 1 FROM checkouts c WHERE c.vehicle_id = v.id AND c.active = true)
	          ORDER BY v.plate`
	return r.list(ctx, query)
}

func (r *vehicleRepository) list(ctx context.Context, query string) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Make, &v.Model, &v.Year, &v.CurrentOdometer, &v.Active, &v.CreatedOn); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Deactivate soft-deletes the vehicle. History stays queryable.
func (r *vehicleRepository) Deactivate(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `UPDATE vehicles SET active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, id))
}
