package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

// CartCleanupScheduler removes items from carts that have not been
// touched for longer than the configured retention window
type CartCleanupScheduler struct {
	cron      *cron.Cron
	cartRepo  repository.CartRepository
	retention time.Duration
	schedule  string
}

// NewCartCleanupScheduler creates the cleanup scheduler
func NewCartCleanupScheduler(cartRepo repository.CartRepository, retention time.Duration, schedule string) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:      cron.New(),
		cartRepo:  cartRepo,
		retention: retention,
		schedule:  schedule,
	}
}

// Start registers the cron job and starts the scheduler
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled cart cleanup", map[string]interface{}{
			"retention": s.retention.String(),
		})

		cutoff := time.Now().Add(-s.retention)
		removed, err := s.cartRepo.DeleteStaleItems(cutoff)
		if err != nil {
			logger.Error("Failed to clean up abandoned carts", err, nil)
			return
		}

		logger.Info("Cart cleanup completed", map[string]interface{}{
			"items_removed": removed,
			"cutoff":        cutoff.Format(time.RFC3339),
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

// Stop stops the scheduler
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
