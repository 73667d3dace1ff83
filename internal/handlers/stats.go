package handlers

import (
	"microhub-backend/internal/services"
	"microhub-backend/internal/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// since parses the ?days= query, defaulting to 30.
func since(c *gin.Context) time.Time {
	days := 30
	if val := c.Query("days"); val != "" {
		if d, err := strconv.Atoi(val); err == nil && d > 0 {
			days = d
		}
	}
	return time.Now().AddDate(0, 0, -days)
}

func (h *StatsHandler) GetSummary(c *gin.Context) {
	summary, err := h.statsService.Summary(since(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, summary)
}

func (h *StatsHandler) GetBlocks(c *gin.Context) {
	rows, err := h.statsService.BlocksByReason(since(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}

func (h *StatsHandler) GetDailyViews(c *gin.Context) {
	rows, err := h.statsService.DailyPageViews(since(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}

func (h *StatsHandler) GetTopPages(c *gin.Context) {
	limit := 10
	if val := c.Query("limit"); val != "" {
		if l, err := strconv.Atoi(val); err == nil {
			limit = l
		}
	}
	rows, err := h.statsService.TopPages(since(c), limit)
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}

func (h *StatsHandler) GetEvents(c *gin.Context) {
	rows, err := h.statsService.EventsByType(since(c))
	if err != nil {
		utils.InternalError(c)
		return
	}
	utils.Success(c, rows)
}
