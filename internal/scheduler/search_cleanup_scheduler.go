package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	"github.com/tastebook/tastebook-backend/pkg/logger"
)

// SearchCleanupScheduler prunes stale browsing-history rows on a daily
// schedule
type SearchCleanupScheduler struct {
	cron          *cron.Cron
	searchService service.SearchService
	retention     time.Duration
}

func NewSearchCleanupScheduler(searchService service.SearchService, retentionDays int) *SearchCleanupScheduler {
	return &SearchCleanupScheduler{
		cron:          cron.New(),
		searchService: searchService,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start schedules the nightly prune at 03:30 server time
func (s *SearchCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		logger.Info("Starting scheduled browsing-history cleanup", map[string]interface{}{
			"retention": s.retention.String(),
		})

		pruned, err := s.searchService.PruneOlderThan(s.retention)
		if err != nil {
			logger.Error("Scheduled browsing-history cleanup failed", err)
			return
		}

		logger.Info("Scheduled browsing-history cleanup finished", map[string]interface{}{
			"rows_pruned": pruned,
		})
	})
	if err != nil {
		logger.Error("Failed to register browsing-history cleanup job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Browsing-history cleanup scheduler started (daily at 03:30)", nil)
	return nil
}

func (s *SearchCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Browsing-history cleanup scheduler stopped", nil)
}
