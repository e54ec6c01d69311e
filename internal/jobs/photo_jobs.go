package jobs

import (
	"context"
	"time"

	"fleettrack-backend/internal/logger"
)

// PurgeOldPhotos removes photo rows and blobs past the retention window.
func (jr *JobRunner) PurgeOldPhotos() {
	jr.runWithRecovery("PurgeOldPhotos", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		purged, err := jr.services.Photo.PurgeOldPhotos(ctx)
		if err != nil {
			logger.Error("Photo purge failed", "error", err)
			return
		}
		logger.Info("Photo purge done", "purged", purged, "retention_days", jr.config.Storage.RetentionDays)
	})
}
