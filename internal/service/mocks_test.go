package service_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) SetAdmin(ctx context.Context, id int32, isAdmin bool) error {
	args := m.Called(ctx, id, isAdmin)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListActive(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCheckoutRepo
type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Open(ctx context.Context, checkout *domain.Checkout) error {
	args := m.Called(ctx, checkout)
	return args.Error(0)
}
func (m *MockCheckoutRepo) Close(ctx context.Context, userID, checkoutID int32, endTime time.Time, odometer float64, notes string) (*domain.Checkout, error) {
	args := m.Called(ctx, userID, checkoutID, endTime, odometer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) GetByID(ctx context.Context, id int32) (*domain.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) GetActiveByUser(ctx context.Context, userID int32) (*domain.Checkout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Checkout, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) UpdateOdometers(ctx context.Context, checkoutID int32, startOdometer, endOdometer float64) error {
	args := m.Called(ctx, checkoutID, startOdometer, endOdometer)
	return args.Error(0)
}

// MockTripRepo
type MockTripRepo struct {
	mock.Mock
}

func (m *MockTripRepo) Open(ctx context.Context, userID, checkoutID int32, departTime time.Time, odometer float64, notes string) (*domain.Trip, error) {
	args := m.Called(ctx, userID, checkoutID, departTime, odometer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripRepo) Close(ctx context.Context, userID, checkoutID int32, returnTime time.Time, odometer float64, notes string) (*domain.Trip, error) {
	args := m.Called(ctx, userID, checkoutID, returnTime, odometer, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripRepo) ListByCheckout(ctx context.Context, checkoutID int32) ([]domain.Trip, error) {
	args := m.Called(ctx, checkoutID)
	return args.Get(0).([]domain.Trip), args.Error(1)
}

// MockPhotoRepo
type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}
func (m *MockPhotoRepo) CountByCheckout(ctx context.Context, checkoutID int32) (int32, error) {
	args := m.Called(ctx, checkoutID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPhotoRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Photo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}
func (m *MockPhotoRepo) ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Photo, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Photo), args.Error(1)
}
func (m *MockPhotoRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) UsageEvents(ctx context.Context, from, to time.Time) ([]domain.UsageEvent, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.UsageEvent), args.Error(1)
}
func (m *MockReportRepo) UsageEventsByUser(ctx context.Context, userID int32, from, to time.Time) ([]domain.UsageEvent, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]domain.UsageEvent), args.Error(1)
}
func (m *MockReportRepo) AllUsageEvents(ctx context.Context) ([]domain.UsageEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UsageEvent), args.Error(1)
}

// MockBlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockBlobStore) Open(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockBlobStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, code string, isAdmin bool) (string, error) {
	args := m.Called(userID, code, isAdmin)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(token string) (*security.UserClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
