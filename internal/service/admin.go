package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/period"
	"fleettrack-backend/internal/repository"
)

type adminService struct {
	users     repository.UserRepository
	vehicles  repository.VehicleRepository
	checkouts repository.CheckoutRepository
	loc       *time.Location
	now       func() time.Time
}

func NewAdminService(
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	checkouts repository.CheckoutRepository,
	loc *time.Location,
	now func() time.Time,
) AdminService {
	if now == nil {
		now = time.Now
	}
	return &adminService{
		users:     users,
		vehicles:  vehicles,
		checkouts: checkouts,
		loc:       loc,
		now:       now,
	}
}

func (s *adminService) CreateUser(ctx context.Context, code, name, password string, isAdmin bool) (*domain.User, error) {
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Code:         code,
		Name:         name,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user created", "user_id", user.ID, "code", user.Code, "is_admin", isAdmin)
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *adminService) DeleteUser(ctx context.Context, code string) error {
	user, err := s.users.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	logger.Info("user deleted", "user_id", user.ID, "code", code)
	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must have at least 6 characters", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	logger.Info("password reset", "user_id", user.ID, "code", code)
	return nil
}

func (s *adminService) SetAdmin(ctx context.Context, code string, isAdmin bool) error {
	user, err := s.users.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := s.users.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return err
	}
	logger.Info("admin flag changed", "user_id", user.ID, "code", code, "is_admin", isAdmin)
	return nil
}

func (s *adminService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.Plate == "" {
		return fmt.Errorf("%w: plate is required", domain.ErrInvalidInput)
	}
	if vehicle.CurrentOdometer < 0 {
		return fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}
	vehicle.Active = true

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return err
	}
	logger.Info("vehicle created", "vehicle_id", vehicle.ID, "plate", vehicle.Plate)
	return nil
}

func (s *adminService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.ListActive(ctx)
}

func (s *adminService) RemoveVehicle(ctx context.Context, vehicleID int32) error {
	if err := s.vehicles.Deactivate(ctx, vehicleID); err != nil {
		return err
	}
	logger.Info("vehicle deactivated", "vehicle_id", vehicleID)
	return nil
}

func (s *adminService) CorrectCheckoutOdometers(ctx context.Context, checkoutID int32, cmd domain.OdometerCorrection) (*domain.Checkout, error) {
	if cmd.StartOdometer == nil && cmd.EndOdometer == nil {
		return nil, fmt.Errorf("%w: no odometer values given", domain.ErrInvalidInput)
	}

	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if checkout.Active || checkout.EndTime == nil || checkout.EndOdometer == nil {
		return nil, fmt.Errorf("%w: checkout is still open", domain.ErrInvalidState)
	}

	// Corrections are allowed only on the calendar day the vehicle was
	// devolved, judged in the reporting timezone.
	if !period.SameDay(*checkout.EndTime, s.now(), s.loc) {
		return nil, fmt.Errorf("%w: edit window closed for checkout %d", domain.ErrForbidden, checkoutID)
	}

	start := checkout.StartOdometer
	if cmd.StartOdometer != nil {
		start = *cmd.StartOdometer
	}
	end := *checkout.EndOdometer
	if cmd.EndOdometer != nil {
		end = *cmd.EndOdometer
	}
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", domain.ErrInvalidInput)
	}
	if end < start {
		return nil, fmt.Errorf("%w: end odometer below start odometer", domain.ErrInvalidInput)
	}

	if err := s.checkouts.UpdateOdometers(ctx, checkoutID, start, end); err != nil {
		return nil, err
	}

	logger.Info("checkout odometers corrected",
		"checkout_id", checkoutID,
		"start_odometer", start,
		"end_odometer", end)
	return s.checkouts.GetByID(ctx, checkoutID)
}
