package services

import (
	"microhub-backend/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RetentionService deletes analytics and audit rows past the retention
// window. The sweep runs once daily from a background goroutine.
type RetentionService struct {
	db   *gorm.DB
	days int
	done chan struct{}
}

func NewRetentionService(db *gorm.DB, days int) *RetentionService {
	return &RetentionService{
		db:   db,
		days: days,
		done: make(chan struct{}),
	}
}

// Start launches the daily sweep loop. One sweep runs immediately so a
// restarted service does not wait a day to catch up.
func (s *RetentionService) Start() {
	go func() {
		s.Sweep()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *RetentionService) Stop() {
	close(s.done)
}

// Sweep deletes all three record kinds older than the retention window.
func (s *RetentionService) Sweep() {
	cutoff := time.Now().AddDate(0, 0, -s.days)

	for _, target := range []struct {
		name  string
		model interface{}
	}{
		{"bot_blocks", &models.BotBlock{}},
		{"page_views", &models.PageView{}},
		{"tracking_events", &models.TrackingEvent{}},
	} {
		result := s.db.Where("created_at < ?", cutoff).Delete(target.model)
		if result.Error != nil {
			logrus.WithError(result.Error).WithField("table", target.name).
				Warn("retention: sweep failed")
			continue
		}
		if result.RowsAffected > 0 {
			logrus.WithFields(logrus.Fields{
				"table":   target.name,
				"deleted": result.RowsAffected,
			}).Info("retention: old records removed")
		}
	}
}
