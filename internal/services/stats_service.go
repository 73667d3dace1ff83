package services

import (
	"microhub-backend/internal/models"
	"time"

	"gorm.io/gorm"
)

// StatsService feeds the admin dashboard with aggregated counts. Read-only.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type PageCount struct {
	PageURL string `json:"page_url"`
	Count   int64  `json:"count"`
}

type EventCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

type TrafficSummary struct {
	TotalViews  int64 `json:"total_views"`
	HumanViews  int64 `json:"human_views"`
	BotViews    int64 `json:"bot_views"`
	TotalBlocks int64 `json:"total_blocks"`
}

func (s *StatsService) BlocksByReason(since time.Time) ([]ReasonCount, error) {
	var rows []ReasonCount
	err := s.db.Model(&models.BotBlock{}).
		Select("reason, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("reason").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (s *StatsService) DailyPageViews(since time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	err := s.db.Model(&models.PageView{}).
		Select("DATE_TRUNC('day', created_at) as day, COUNT(*) as count").
		Where("created_at >= ? AND is_bot = ?", since, false).
		Group("day").
		Order("day").
		Find(&rows).Error
	return rows, err
}

func (s *StatsService) TopPages(since time.Time, limit int) ([]PageCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []PageCount
	err := s.db.Model(&models.PageView{}).
		Select("page_url, COUNT(*) as count").
		Where("created_at >= ? AND is_bot = ?", since, false).
		Group("page_url").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (s *StatsService) EventsByType(since time.Time) ([]EventCount, error) {
	var rows []EventCount
	err := s.db.Model(&models.TrackingEvent{}).
		Select("event_type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("event_type").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (s *StatsService) Summary(since time.Time) (*TrafficSummary, error) {
	summary := &TrafficSummary{}

	if err := s.db.Model(&models.PageView{}).
		Where("created_at >= ?", since).
		Count(&summary.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.PageView{}).
		Where("created_at >= ? AND is_bot = ?", since, true).
		Count(&summary.BotViews).Error; err != nil {
		return nil, err
	}
	summary.HumanViews = summary.TotalViews - summary.BotViews

	if err := s.db.Model(&models.BotBlock{}).
		Where("created_at >= ?", since).
		Count(&summary.TotalBlocks).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
