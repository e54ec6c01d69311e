package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/service"
)

type AdminHandler struct {
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type createUserRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.admin.CreateUser(r.Context(), req.Code, req.Name, req.Password, req.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteUser(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.admin.ResetPassword(r.Context(), mux.Vars(r)["code"], req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type setAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.admin.SetAdmin(r.Context(), mux.Vars(r)["code"], req.IsAdmin); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type createVehicleRequest struct {
	Plate    string  `json:"plate"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Year     int32   `json:"year"`
	Odometer float64 `json:"odometer"`
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		Plate:           req.Plate,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		CurrentOdometer: req.Odometer,
	}
	if err := h.admin.CreateVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.admin.ListVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *AdminHandler) RemoveVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.admin.RemoveVehicle(r.Context(), vehicleID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// CorrectOdometers applies the same-day odometer fix to a closed
// checkout.
func (h *AdminHandler) CorrectOdometers(w http.ResponseWriter, r *http.Request) {
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var cmd domain.OdometerCorrection
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	checkout, err := h.admin.CorrectCheckoutOdometers(r.Context(), checkoutID, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}
