package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/repository"
	"fleettrack-backend/internal/storage"
)

// allowedPhotoExtensions is the accepted upload whitelist, lowercase.
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

type PhotoConfig struct {
	MaxFileSizeMB  int
	MaxPerCheckout int
	RetentionDays  int
}

type photoService struct {
	photos    repository.PhotoRepository
	checkouts repository.CheckoutRepository
	users     repository.UserRepository
	blobs     storage.BlobStore
	cfg       PhotoConfig
	now       func() time.Time
}

func NewPhotoService(
	photos repository.PhotoRepository,
	checkouts repository.CheckoutRepository,
	users repository.UserRepository,
	blobs storage.BlobStore,
	cfg PhotoConfig,
	now func() time.Time,
) PhotoService {
	if now == nil {
		now = time.Now
	}
	return &photoService{
		photos:    photos,
		checkouts: checkouts,
		users:     users,
		blobs:     blobs,
		cfg:       cfg,
		now:       now,
	}
}

func (s *photoService) AttachPhoto(ctx context.Context, userID, checkoutID int32, filename string, reader io.Reader, size int64) (*domain.Photo, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPhotoExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}
	if maxBytes := int64(s.cfg.MaxFileSizeMB) * 1024 * 1024; size > maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %dMB limit", domain.ErrInvalidInput, s.cfg.MaxFileSizeMB)
	}

	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	// Not owned reads the same as absent so callers cannot probe for
	// other users' checkout IDs.
	if checkout.UserID != userID {
		return nil, fmt.Errorf("%w: checkout %d", domain.ErrNotFound, checkoutID)
	}

	count, err := s.photos.CountByCheckout(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to count checkout photos: %w", err)
	}
	if int(count) >= s.cfg.MaxPerCheckout {
		return nil, fmt.Errorf("%w: checkout already has %d photos", domain.ErrConflict, count)
	}

	// Depart photos while the vehicle is out, return photos once the
	// checkout is closed.
	stage := domain.PhotoStageReturn
	if checkout.Active {
		stage = domain.PhotoStageDepart
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	taken := s.now().UTC()
	key := fmt.Sprintf("%s/%s_%s_%d_%s%s",
		user.Code, taken.Format("20060102T150405"), stage, checkoutID, uuid.NewString(), ext)

	if err := s.blobs.Save(key, io.LimitReader(reader, size)); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo := &domain.Photo{
		CheckoutID: checkoutID,
		Stage:      stage,
		Path:       key,
		CreatedOn:  taken,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		// Keep the store consistent with the ledger.
		if derr := s.blobs.Delete(key); derr != nil {
			logger.Error("failed to remove orphaned photo blob", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	logger.Info("photo attached", "checkout_id", checkoutID, "stage", stage, "path", key)
	return photo, nil
}

func (s *photoService) ListUserPhotos(ctx context.Context, userCode string) ([]domain.PhotoDayGroup, error) {
	user, err := s.users.GetByCode(ctx, userCode)
	if err != nil {
		return nil, err
	}

	photos, err := s.photos.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	// Photos arrive newest first, so appending in order keeps both the
	// day list and each day's photos sorted.
	var groups []domain.PhotoDayGroup
	for _, p := range photos {
		day := p.CreatedOn.UTC().Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Date != day {
			groups = append(groups, domain.PhotoDayGroup{Date: day})
		}
		groups[len(groups)-1].Photos = append(groups[len(groups)-1].Photos, p)
	}
	return groups, nil
}

func (s *photoService) PurgeOldPhotos(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)

	old, err := s.photos.ListOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired photos: %w", err)
	}

	purged := 0
	for _, p := range old {
		if err := s.blobs.Delete(p.Path); err != nil {
			logger.Error("failed to delete photo blob, skipping row", "photo_id", p.ID, "path", p.Path, "error", err)
			continue
		}
		if err := s.photos.Delete(ctx, p.ID); err != nil {
			logger.Error("failed to delete photo row", "photo_id", p.ID, "error", err)
			continue
		}
		purged++
	}

	logger.Info("photo retention purge finished", "cutoff", cutoff, "purged", purged, "candidates", len(old))
	return purged, nil
}
