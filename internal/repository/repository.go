package repository

import (
	"context"
	"time"

	"fleettrack-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByCode(ctx context.Context, code string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	SetAdmin(ctx context.Context, id int32, isAdmin bool) error
	Delete(ctx context.Context, id int32) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	ListActive(ctx context.Context) ([]domain.Vehicle, error)
	// ListAvailable returns active vehicles with no active checkout by
	// anyone. Availability is global, not per-user.
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	Deactivate(ctx context.Context, id int32) error
}

// CheckoutRepository owns the checkout lifecycle. Open and Close run as
// single transactions and are the authoritative guard for the
// one-active-checkout-per-user and one-active-checkout-per-vehicle
// invariants (row locks plus partial unique indexes).
type CheckoutRepository interface {
	// Open creates an active checkout. Fails with ErrConflict if the
	// user or the vehicle already has an active checkout, ErrNotFound
	// if the vehicle is unknown or inactive.
	Open(ctx context.Context, checkout *domain.Checkout) error
	// Close devolves the vehicle: fails with ErrNotFound if the caller
	// has no matching active checkout, ErrConflict while a trip is
	// still open. Updates the vehicle's current odometer in the same
	// transaction.
	Close(ctx context.Context, userID, checkoutID int32, endTime time.Time, odometer float64, notes string) (*domain.Checkout, error)
	GetByID(ctx context.Context, id int32) (*domain.Checkout, error)
	GetActiveByUser(ctx context.Context, userID int32) (*domain.Checkout, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Checkout, error)
	// UpdateOdometers applies an admin correction to a closed checkout
	// and refreshes the vehicle's current odometer when this checkout
	// is the vehicle's most recent closure. Window and value validation
	// happen in the service layer.
	UpdateOdometers(ctx context.Context, checkoutID int32, startOdometer, endOdometer float64) error
}

type TripRepository interface {
	// Open starts a trip on the caller's active checkout. Fails with
	// ErrNotFound if the checkout is absent, closed or not owned by the
	// caller, ErrConflict if a trip is already open. Assigns the next
	// contiguous sequence number inside the transaction.
	Open(ctx context.Context, userID, checkoutID int32, departTime time.Time, odometer float64, notes string) (*domain.Trip, error)
	// Close finishes the open trip, computing its distance. Fails with
	// ErrNotFound when no trip is open.
	Close(ctx context.Context, userID, checkoutID int32, returnTime time.Time, odometer float64, notes string) (*domain.Trip, error)
	ListByCheckout(ctx context.Context, checkoutID int32) ([]domain.Trip, error)
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	CountByCheckout(ctx context.Context, checkoutID int32) (int32, error)
	// ListByUser returns photos across all of a user's checkouts,
	// newest first.
	ListByUser(ctx context.Context, userID int32) ([]domain.Photo, error)
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Photo, error)
	Delete(ctx context.Context, id int32) error
}

// ReportRepository is the read side of the ledger. It never mutates and
// tolerates running behind concurrent checkout writes.
type ReportRepository interface {
	// UsageEvents returns checkout-closure and trip events whose
	// reference instant falls in [from, to). Callers pass a window wide
	// enough to cover timezone skew and filter precisely by local
	// calendar date.
	UsageEvents(ctx context.Context, from, to time.Time) ([]domain.UsageEvent, error)
	UsageEventsByUser(ctx context.Context, userID int32, from, to time.Time) ([]domain.UsageEvent, error)
	// AllUsageEvents feeds the all-time quick summary.
	AllUsageEvents(ctx context.Context) ([]domain.UsageEvent, error)
}
