package postgres

import (
	"database/sql"
	"errors"

	"fleettrack-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.CheckoutRepository
	repository.TripRepository
	repository.PhotoRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		VehicleRepository:  NewVehicleRepository(db),
		CheckoutRepository: NewCheckoutRepository(db),
		TripRepository:     NewTripRepository(db),
		PhotoRepository:    NewPhotoRepository(db),
		ReportRepository:   NewReportRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. The partial unique indexes on active checkouts make the
// database the final arbiter of the exclusivity invariants.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
