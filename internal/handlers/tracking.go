package handlers

import (
	"encoding/hex"
	"microhub-backend/internal/config"
	"microhub-backend/internal/guard"
	"microhub-backend/internal/middleware"
	"microhub-backend/internal/models"
	"microhub-backend/internal/services"
	"microhub-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
	guard           *guard.Guard
	cfg             *config.Config
	validator       *validator.Validate
}

func NewTrackingHandler(trackingService *services.TrackingService, g *guard.Guard, cfg *config.Config, v *validator.Validate) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		guard:           g,
		cfg:             cfg,
		validator:       v,
	}
}

// RecordPageView stores a render and refreshes the visitor's session cookie.
// A missing or expired cookie starts a new session.
func (h *TrackingHandler) RecordPageView(c *gin.Context) {
	var req models.PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	sessionID := h.sessionID(c)
	ipHash := middleware.IPHash(c, h.guard)

	view, err := h.trackingService.RecordPageView(sessionID, ipHash, c.Request.UserAgent(), &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"session_id": sessionID,
		"view_id":    view.ID,
	})
}

// UpdateDuration is the follow-up write for a page view's dwell time.
func (h *TrackingHandler) UpdateDuration(c *gin.Context) {
	var req models.DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if err := h.trackingService.UpdateDuration(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(c, nil)
}

// RecordEvent accepts one interaction from the closed taxonomy. Bad types
// and missing fields are client-correctable errors and are signaled, not
// silently dropped.
func (h *TrackingHandler) RecordEvent(c *gin.Context) {
	var req models.TrackingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	ipHash := middleware.IPHash(c, h.guard)
	event, err := h.trackingService.RecordEvent(ipHash, c.Request.UserAgent(), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(c, gin.H{"event_id": event.ID})
}

// sessionID returns the visitor's session token, minting a fresh one when
// the cookie is missing or malformed. The cookie's 30-minute lifetime rolls
// forward on every page view.
func (h *TrackingHandler) sessionID(c *gin.Context) string {
	name := h.cfg.Tracking.SessionCookieName
	maxAge := h.cfg.Tracking.SessionTTLMinutes * 60

	id, err := c.Cookie(name)
	if err != nil || !isSessionToken(id) {
		id = newSessionToken()
	}
	c.SetCookie(name, id, maxAge, "/", "", false, true)
	return id
}

// newSessionToken builds a random 32-char hex token from a UUID.
func newSessionToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

func isSessionToken(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
