package service

import (
	"context"
	"fmt"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/repository"
)

type checkoutService struct {
	checkouts repository.CheckoutRepository
	trips     repository.TripRepository
	vehicles  repository.VehicleRepository
	now       func() time.Time
}

func NewCheckoutService(
	checkouts repository.CheckoutRepository,
	trips repository.TripRepository,
	vehicles repository.VehicleRepository,
	now func() time.Time,
) CheckoutService {
	if now == nil {
		now = time.Now
	}
	return &checkoutService{
		checkouts: checkouts,
		trips:     trips,
		vehicles:  vehicles,
		now:       now,
	}
}

func (s *checkoutService) ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *checkoutService) OpenCheckout(ctx context.Context, userID, vehicleID int32, odometer float64, notes string) (*domain.Checkout, error) {
	if odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}

	checkout := &domain.Checkout{
		UserID:        userID,
		VehicleID:     vehicleID,
		StartTime:     s.now().UTC(),
		StartOdometer: odometer,
		StartNotes:    notes,
		Active:        true,
	}
	if err := s.checkouts.Open(ctx, checkout); err != nil {
		return nil, err
	}

	logger.Info("checkout opened",
		"checkout_id", checkout.ID,
		"user_id", userID,
		"vehicle_id", vehicleID,
		"odometer", odometer)
	return checkout, nil
}

func (s *checkoutService) CloseCheckout(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Checkout, error) {
	if odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}

	checkout, err := s.checkouts.Close(ctx, userID, checkoutID, s.now().UTC(), odometer, notes)
	if err != nil {
		return nil, err
	}

	logger.Info("checkout closed",
		"checkout_id", checkout.ID,
		"user_id", userID,
		"vehicle_id", checkout.VehicleID,
		"end_odometer", odometer)
	return checkout, nil
}

func (s *checkoutService) OpenTrip(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Trip, error) {
	if odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}

	trip, err := s.trips.Open(ctx, userID, checkoutID, s.now().UTC(), odometer, notes)
	if err != nil {
		return nil, err
	}

	logger.Info("trip opened",
		"trip_id", trip.ID,
		"checkout_id", checkoutID,
		"sequence", trip.Sequence)
	return trip, nil
}

func (s *checkoutService) CloseTrip(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Trip, error) {
	if odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}

	trip, err := s.trips.Close(ctx, userID, checkoutID, s.now().UTC(), odometer, notes)
	if err != nil {
		return nil, err
	}

	var distance float64
	if trip.Distance != nil {
		distance = *trip.Distance
	}
	logger.Info("trip closed",
		"trip_id", trip.ID,
		"checkout_id", checkoutID,
		"distance", distance)
	return trip, nil
}

func (s *checkoutService) GetActiveCheckout(ctx context.Context, userID int32) (*domain.Checkout, error) {
	checkout, err := s.checkouts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, checkout.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout vehicle: %w", err)
	}
	checkout.Vehicle = vehicle

	trips, err := s.trips.ListByCheckout(ctx, checkout.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout trips: %w", err)
	}
	checkout.Trips = trips

	return checkout, nil
}

func (s *checkoutService) ListMyCheckouts(ctx context.Context, userID int32) ([]domain.Checkout, error) {
	checkouts, err := s.checkouts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkouts: %w", err)
	}
	return checkouts, nil
}

func (s *checkoutService) ListTrips(ctx context.Context, userID, checkoutID int32) ([]domain.Trip, error) {
	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	// Not owned reads the same as absent so callers cannot probe for
	// other users' checkout IDs.
	if checkout.UserID != userID {
		return nil, fmt.Errorf("%w: checkout %d", domain.ErrNotFound, checkoutID)
	}

	trips, err := s.trips.ListByCheckout(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}
