package models

import "time"

// BotBlock is the append-only audit row written on every guard block and
// honeypot trip. Rows are never mutated; the retention sweep deletes them
// after the configured window.
type BotBlock struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IPHash    string    `json:"ip_hash" gorm:"size:64;index;not null"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	Reason    string    `json:"reason" gorm:"size:32;index;not null"`
	PageURL   string    `json:"page_url" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// PageView is one frontend render, keyed by session. Duration is written
// once by a follow-up call from the page.
type PageView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"size:32;index;not null"`
	IPHash    string    `json:"ip_hash" gorm:"size:64;index"`
	PageURL   string    `json:"page_url" gorm:"size:500;index;not null"`
	Referer   string    `json:"referer" gorm:"size:500"`
	PostID    uint      `json:"post_id" gorm:"index"`
	IsBot     bool      `json:"is_bot" gorm:"index"`
	Duration  int       `json:"duration" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TrackingEvent is a client-reported interaction from the closed taxonomy.
type TrackingEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SessionID   string    `json:"session_id" gorm:"size:32;index;not null"`
	IPHash      string    `json:"ip_hash" gorm:"size:64"`
	EventType   string    `json:"event_type" gorm:"size:32;index;not null"`
	EventTarget string    `json:"event_target" gorm:"size:500"`
	EventValue  string    `json:"event_value" gorm:"size:500"`
	PostID      uint      `json:"post_id" gorm:"index"`
	IsBot       bool      `json:"is_bot"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// EventTypes is the closed taxonomy of client-reported interactions.
// Anything outside this set is rejected at the API edge.
var EventTypes = []string{
	"tag_click",
	"outbound_link",
	"search",
	"filter_change",
	"pagination",
	"paper_view",
	"citation_copy",
	"chat_query",
}

func IsValidEventType(t string) bool {
	for _, e := range EventTypes {
		if t == e {
			return true
		}
	}
	return false
}

type PageViewRequest struct {
	PageURL string `json:"page_url" validate:"required,max=500"`
	Referer string `json:"referer" validate:"max=500"`
	PostID  uint   `json:"post_id"`
}

type DurationRequest struct {
	SessionID string `json:"session_id" validate:"required,len=32"`
	PageURL   string `json:"page_url" validate:"required,max=500"`
	Duration  int    `json:"duration" validate:"required,min=1"`
}

type TrackingEventRequest struct {
	SessionID   string `json:"session_id" validate:"required,len=32"`
	EventType   string `json:"event_type" validate:"required,eventtype"`
	EventTarget string `json:"event_target" validate:"max=500"`
	EventValue  string `json:"event_value" validate:"max=500"`
	PostID      uint   `json:"post_id"`
}
