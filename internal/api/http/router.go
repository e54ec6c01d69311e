package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleettrack-backend/internal/security"
	"fleettrack-backend/internal/service"
)

// RouterConfig bundles everything the HTTP surface needs.
type RouterConfig struct {
	Auth      service.AuthService
	Checkouts service.CheckoutService
	Photos    service.PhotoService
	Reports   service.ReportService
	Admin     service.AdminService
	Tokens    security.TokenManager
	// MaxUploadMB caps multipart photo uploads.
	MaxUploadMB int
}

// NewRouter builds the full API route tree. Checkout routes require a
// valid bearer token, admin routes additionally require the admin flag.
func NewRouter(cfg RouterConfig) *mux.Router {
	authHandler := NewAuthHandler(cfg.Auth)
	checkoutHandler := NewCheckoutHandler(cfg.Checkouts)
	photoHandler := NewPhotoHandler(cfg.Photos, cfg.MaxUploadMB)
	reportHandler := NewReportHandler(cfg.Reports)
	adminHandler := NewAdminHandler(cfg.Admin)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	checkout := api.PathPrefix("/checkout").Subrouter()
	checkout.Use(AuthMiddleware(cfg.Tokens))
	checkout.HandleFunc("/vehicles", checkoutHandler.ListAvailableVehicles).Methods(http.MethodGet)
	checkout.HandleFunc("/retrieve/{vehicleID:[0-9]+}", checkoutHandler.Retrieve).Methods(http.MethodPost)
	checkout.HandleFunc("/active", checkoutHandler.Active).Methods(http.MethodGet)
	checkout.HandleFunc("/mine", checkoutHandler.Mine).Methods(http.MethodGet)
	checkout.HandleFunc("/{id:[0-9]+}/depart", checkoutHandler.Depart).Methods(http.MethodPost)
	checkout.HandleFunc("/{id:[0-9]+}/return", checkoutHandler.Return).Methods(http.MethodPost)
	checkout.HandleFunc("/{id:[0-9]+}/devolve", checkoutHandler.Devolve).Methods(http.MethodPost)
	checkout.HandleFunc("/{id:[0-9]+}/trips", checkoutHandler.Trips).Methods(http.MethodGet)
	checkout.HandleFunc("/{id:[0-9]+}/photos", photoHandler.Upload).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(AuthMiddleware(cfg.Tokens), AdminMiddleware)
	admin.HandleFunc("/users", adminHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{code}", adminHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{code}/password", adminHandler.ResetPassword).Methods(http.MethodPut)
	admin.HandleFunc("/users/{code}/admin", adminHandler.SetAdmin).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles", adminHandler.CreateVehicle).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles", adminHandler.ListVehicles).Methods(http.MethodGet)
	admin.HandleFunc("/vehicles/{id:[0-9]+}", adminHandler.RemoveVehicle).Methods(http.MethodDelete)
	admin.HandleFunc("/reports", reportHandler.QuickSummary).Methods(http.MethodGet)
	admin.HandleFunc("/reports/period", reportHandler.PeriodReport).Methods(http.MethodGet)
	admin.HandleFunc("/reports/period/pdf", reportHandler.PeriodReportPDF).Methods(http.MethodGet)
	admin.HandleFunc("/reports/user/{code}", reportHandler.UserDetail).Methods(http.MethodGet)
	admin.HandleFunc("/reports/user/{code}/period", reportHandler.UserPeriodReport).Methods(http.MethodGet)
	admin.HandleFunc("/checkouts/{id:[0-9]+}/odometer", adminHandler.CorrectOdometers).Methods(http.MethodPut)
	admin.HandleFunc("/photos/{code}", photoHandler.UserGallery).Methods(http.MethodGet)

	return r
}
