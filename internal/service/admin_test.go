package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/service"
)

// Reporting timezone used by the fleet, UTC-3.
var reportZone = time.FixedZone("-03", -3*60*60)

func floatPtr(v float64) *float64 { return &v }

func newAdminService(users *MockUserRepo, vehicles *MockVehicleRepo, checkouts *MockCheckoutRepo) service.AdminService {
	return service.NewAdminService(users, vehicles, checkouts, reportZone, fixedClock)
}

func TestAdminService_CorrectCheckoutOdometers(t *testing.T) {
	ctx := context.Background()

	closedCheckout := func(end time.Time) *domain.Checkout {
		return &domain.Checkout{
			ID: 3, UserID: 1, VehicleID: 7,
			StartOdometer: 1000,
			EndTime:       &end,
			EndOdometer:   floatPtr(1150),
			Active:        false,
		}
	}

	t.Run("SameDayAllowed", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		// Closed three hours before "now", same local date.
		end := fixedNow.Add(-3 * time.Hour)
		mockCheckouts.On("GetByID", ctx, int32(3)).Return(closedCheckout(end), nil).Once()
		mockCheckouts.On("UpdateOdometers", ctx, int32(3), 1005.0, 1150.0).Return(nil).Once()
		mockCheckouts.On("GetByID", ctx, int32(3)).Return(closedCheckout(end), nil).Once()

		_, err := svc.CorrectCheckoutOdometers(ctx, 3, domain.OdometerCorrection{StartOdometer: floatPtr(1005)})
		assert.NoError(t, err)
		mockCheckouts.AssertExpectations(t)
	})

	t.Run("YesterdayForbiddenEvenWhenUTCDateMatches", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		// 01:00 UTC today is still yesterday evening in UTC-3, so the
		// edit window is closed despite the matching UTC date.
		end := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
		require.Equal(t, fixedNow.UTC().Day(), end.Day())
		mockCheckouts.On("GetByID", ctx, int32(3)).Return(closedCheckout(end), nil).Once()

		_, err := svc.CorrectCheckoutOdometers(ctx, 3, domain.OdometerCorrection{EndOdometer: floatPtr(1200)})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		mockCheckouts.AssertNotCalled(t, "UpdateOdometers")
	})

	t.Run("StillOpenRejected", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		open := &domain.Checkout{ID: 3, UserID: 1, VehicleID: 7, StartOdometer: 1000, Active: true}
		mockCheckouts.On("GetByID", ctx, int32(3)).Return(open, nil).Once()

		_, err := svc.CorrectCheckoutOdometers(ctx, 3, domain.OdometerCorrection{EndOdometer: floatPtr(1200)})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("EndBelowStartRejected", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		end := fixedNow.Add(-time.Hour)
		mockCheckouts.On("GetByID", ctx, int32(3)).Return(closedCheckout(end), nil).Once()

		// New end odometer below the kept start odometer.
		_, err := svc.CorrectCheckoutOdometers(ctx, 3, domain.OdometerCorrection{EndOdometer: floatPtr(900)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		mockCheckouts.AssertNotCalled(t, "UpdateOdometers")
	})

	t.Run("EmptyCommandRejected", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		_, err := svc.CorrectCheckoutOdometers(ctx, 3, domain.OdometerCorrection{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		mockCheckouts.AssertNotCalled(t, "GetByID")
	})

	t.Run("UnknownCheckout", func(t *testing.T) {
		mockCheckouts := new(MockCheckoutRepo)
		svc := newAdminService(nil, nil, mockCheckouts)

		mockCheckouts.On("GetByID", ctx, int32(404)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.CorrectCheckoutOdometers(ctx, 404, domain.OdometerCorrection{EndOdometer: floatPtr(1200)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdminService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		svc := newAdminService(mockUsers, nil, nil)

		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Code == "MOTO001" && u.Active && u.PasswordHash != "" && u.PasswordHash != "secret123"
		})).Return(nil).Once()

		user, err := svc.CreateUser(ctx, "MOTO001", "Driver One", "secret123", false)
		assert.NoError(t, err)
		assert.Equal(t, "MOTO001", user.Code)
		mockUsers.AssertExpectations(t)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		svc := newAdminService(mockUsers, nil, nil)

		_, err := svc.CreateUser(ctx, "MOTO001", "Driver One", "abc", false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		mockUsers.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		svc := newAdminService(mockUsers, nil, nil)

		mockUsers.On("Create", ctx, mock.Anything).Return(domain.ErrConflict).Once()

		_, err := svc.CreateUser(ctx, "MOTO001", "Driver One", "secret123", false)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAdminService_CreateVehicle(t *testing.T) {
	ctx := context.Background()
	mockVehicles := new(MockVehicleRepo)
	svc := newAdminService(nil, mockVehicles, nil)

	mockVehicles.On("Create", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.Plate == "ABC1D23" && v.Active
	})).Return(nil).Once()

	err := svc.CreateVehicle(ctx, &domain.Vehicle{Plate: "ABC1D23", Make: "Fiat", Model: "Strada", Year: 2024, CurrentOdometer: 100})
	assert.NoError(t, err)

	err = svc.CreateVehicle(ctx, &domain.Vehicle{Plate: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
