package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/service"
)

type CheckoutHandler struct {
	checkouts service.CheckoutService
}

func NewCheckoutHandler(checkouts service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

// pathID parses a numeric {name} path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrInvalidInput, name, raw)
	}
	return int32(id), nil
}

func requireClaims(w http.ResponseWriter, r *http.Request) (int32, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
		return 0, false
	}
	return claims.UserID, true
}

type odometerRequest struct {
	Odometer float64 `json:"odometer"`
	Notes    string  `json:"notes"`
}

func (h *CheckoutHandler) ListAvailableVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.checkouts.ListAvailableVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *CheckoutHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	vehicleID, err := pathID(r, "vehicleID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req odometerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	checkout, err := h.checkouts.OpenCheckout(r.Context(), userID, vehicleID, req.Odometer, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkout)
}

func (h *CheckoutHandler) Devolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req odometerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	checkout, err := h.checkouts.CloseCheckout(r.Context(), userID, checkoutID, req.Odometer, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) Depart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req odometerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	trip, err := h.checkouts.OpenTrip(r.Context(), userID, checkoutID, req.Odometer, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *CheckoutHandler) Return(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req odometerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	trip, err := h.checkouts.CloseTrip(r.Context(), userID, checkoutID, req.Odometer, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *CheckoutHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}

	checkout, err := h.checkouts.GetActiveCheckout(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}

	checkouts, err := h.checkouts.ListMyCheckouts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkouts)
}

func (h *CheckoutHandler) Trips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	trips, err := h.checkouts.ListTrips(r.Context(), userID, checkoutID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}
