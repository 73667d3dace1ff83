package services

import (
	"fmt"
	"microhub-backend/internal/guard"
	"microhub-backend/internal/models"

	"gorm.io/gorm"
)

type TrackingService struct {
	db          *gorm.DB
	maxDuration int
}

func NewTrackingService(db *gorm.DB, maxDuration int) *TrackingService {
	return &TrackingService{db: db, maxDuration: maxDuration}
}

// RecordPageView stores one render. The bot flag is computed here with the
// same classifier the guard uses; the tracker does not assume the guard ran
// first and re-classifies defensively.
func (s *TrackingService) RecordPageView(sessionID, ipHash, userAgent string, req *models.PageViewRequest) (*models.PageView, error) {
	view := models.PageView{
		SessionID: sessionID,
		IPHash:    ipHash,
		PageURL:   truncate(req.PageURL, 500),
		Referer:   truncate(req.Referer, 500),
		PostID:    req.PostID,
		IsBot:     guard.Classify(userAgent).IsBot,
	}
	if err := s.db.Create(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateDuration is idempotent last-write-wins on (session, page). Reports
// over the cap come from stale or background tabs and are rejected.
func (s *TrackingService) UpdateDuration(req *models.DurationRequest) error {
	if req.Duration > s.maxDuration {
		return fmt.Errorf("duration exceeds %d seconds", s.maxDuration)
	}

	result := s.db.Model(&models.PageView{}).
		Where("session_id = ? AND page_url = ?", req.SessionID, req.PageURL).
		Update("duration", req.Duration)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no page view for this session and page")
	}
	return nil
}

func (s *TrackingService) RecordEvent(ipHash, userAgent string, req *models.TrackingEventRequest) (*models.TrackingEvent, error) {
	if !models.IsValidEventType(req.EventType) {
		return nil, fmt.Errorf("unknown event type %q", req.EventType)
	}

	event := models.TrackingEvent{
		SessionID:   req.SessionID,
		IPHash:      ipHash,
		EventType:   req.EventType,
		EventTarget: truncate(req.EventTarget, 500),
		EventValue:  truncate(req.EventValue, 500),
		PostID:      req.PostID,
		IsBot:       guard.Classify(userAgent).IsBot,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
