package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/service"
)

type PhotoHandler struct {
	photos         service.PhotoService
	maxUploadBytes int64
}

func NewPhotoHandler(photos service.PhotoService, maxUploadMB int) *PhotoHandler {
	return &PhotoHandler{
		photos:         photos,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Upload accepts a multipart form with a "photo" file field and attaches
// it to the caller's checkout.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireClaims(w, r)
	if !ok {
		return
	}
	checkoutID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, fmt.Errorf("%w: upload too large or malformed", domain.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing photo file field", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	photo, err := h.photos.AttachPhoto(r.Context(), userID, checkoutID, header.Filename, file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

// UserGallery returns one user's photos grouped by day. Admin only.
func (h *PhotoHandler) UserGallery(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	groups, err := h.photos.ListUserPhotos(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
