package service

import (
	"context"
	"io"

	"fleettrack-backend/internal/domain"
)

type AuthService interface {
	// Login verifies a user code + password and returns a signed access
	// token. Fails with ErrUnauthorized on bad credentials and
	// ErrForbidden for deactivated users.
	Login(ctx context.Context, code, password string) (string, *domain.User, error)
}

type CheckoutService interface {
	ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
	OpenCheckout(ctx context.Context, userID, vehicleID int32, odometer float64, notes string) (*domain.Checkout, error)
	CloseCheckout(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Checkout, error)
	OpenTrip(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Trip, error)
	CloseTrip(ctx context.Context, userID, checkoutID int32, odometer float64, notes string) (*domain.Trip, error)
	// GetActiveCheckout returns the caller's active checkout with its
	// vehicle and trips populated.
	GetActiveCheckout(ctx context.Context, userID int32) (*domain.Checkout, error)
	ListMyCheckouts(ctx context.Context, userID int32) ([]domain.Checkout, error)
	ListTrips(ctx context.Context, userID, checkoutID int32) ([]domain.Trip, error)
}

type PhotoService interface {
	// AttachPhoto stores a photo blob and records it against the
	// checkout. The blob write happens outside any ledger transaction.
	AttachPhoto(ctx context.Context, userID int32, checkoutID int32, filename string, reader io.Reader, size int64) (*domain.Photo, error)
	// ListUserPhotos groups a user's photos by UTC calendar day, newest
	// day first. Admin-facing.
	ListUserPhotos(ctx context.Context, userCode string) ([]domain.PhotoDayGroup, error)
	// PurgeOldPhotos deletes photos older than the retention window,
	// rows and blobs both, returning how many were removed.
	PurgeOldPhotos(ctx context.Context) (int, error)
}

type ReportService interface {
	// QuickSummary is the admin dashboard: all-time plus rolling
	// today/week/month km per vehicle.
	QuickSummary(ctx context.Context) ([]domain.VehicleQuickSummary, error)
	// PeriodReport aggregates fleet usage over a named or custom period
	// with the requested bucket granularity.
	PeriodReport(ctx context.Context, periodName, customStart, customEnd, granularity string) (*domain.PeriodReport, error)
	// UserPeriodReport scopes the aggregation to one driver.
	UserPeriodReport(ctx context.Context, userCode, periodName, customStart, customEnd, granularity string) (*domain.PeriodReport, error)
	// UserDetailReport is the per-vehicle drill-down for one driver
	// with raw checkout and trip lines.
	UserDetailReport(ctx context.Context, userCode string) (*domain.UserDetailReport, error)
	// PeriodReportPDF renders the period fleet summary as a PDF
	// document, returning content and a suggested filename.
	PeriodReportPDF(ctx context.Context, periodName, customStart, customEnd string) ([]byte, string, error)
}

type AdminService interface {
	CreateUser(ctx context.Context, code, name, password string, isAdmin bool) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, code string) error
	ResetPassword(ctx context.Context, code, newPassword string) error
	SetAdmin(ctx context.Context, code string, isAdmin bool) error

	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	RemoveVehicle(ctx context.Context, vehicleID int32) error

	// CorrectCheckoutOdometers fixes the odometer readings of a closed
	// checkout, allowed only while "now" and the checkout's end time
	// share a calendar date in the reporting timezone.
	CorrectCheckoutOdometers(ctx context.Context, checkoutID int32, cmd domain.OdometerCorrection) (*domain.Checkout, error)
}
