package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
)

// purgeRetention is how long a soft-deleted image stays recoverable
// before the nightly job removes it and its stored object.
const purgeRetention = 30 * 24 * time.Hour

// MediaScheduler runs the nightly purge of soft-deleted images.
type MediaScheduler struct {
	cron         *cron.Cron
	mediaService service.MediaService
}

func NewMediaScheduler(mediaService service.MediaService) *MediaScheduler {
	return &MediaScheduler{
		cron:         cron.New(),
		mediaService: mediaService,
	}
}

func (s *MediaScheduler) Start() error {
	// Nightly at 03:00, when admin traffic is lowest.
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled media purge", nil)

		cutoff := time.Now().Add(-purgeRetention)
		purged, err := s.mediaService.PurgeDeleted(context.Background(), cutoff)
		if err != nil {
			logger.Error("Scheduled media purge failed", err)
			return
		}

		logger.Info("Scheduled media purge finished", map[string]interface{}{
			"purged": purged,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for media purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Media scheduler started (daily at 3:00 AM)", nil)

	return nil
}

func (s *MediaScheduler) Stop() {
	logger.Info("Stopping media scheduler...", nil)
	s.cron.Stop()
	logger.Info("Media scheduler stopped", nil)
}
