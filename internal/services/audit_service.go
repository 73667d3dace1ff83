package services

import (
	"context"
	"microhub-backend/internal/guard"
	"microhub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService persists guard block events. Writes are best-effort: a
// missing table or a write error is logged and swallowed so the block/allow
// decision always takes effect regardless of audit availability.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) LogBlock(ctx context.Context, event guard.BlockEvent) {
	record := models.BotBlock{
		IPHash:    event.IPHash,
		UserAgent: truncate(event.UserAgent, 500),
		Reason:    event.Reason,
		PageURL:   truncate(event.PageURL, 500),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		logrus.WithError(err).Warn("audit: block record write failed")
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
