package handlers

import (
	"microhub-backend/internal/guard"
	"microhub-backend/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrapPath is the callback both invisible honeypot elements target.
const TrapPath = "/api/track/archive"

type HoneypotHandler struct {
	guard *guard.Guard
}

func NewHoneypotHandler(g *guard.Guard) *HoneypotHandler {
	return &HoneypotHandler{guard: g}
}

// Trigger handles any hit on the trap. Activation is conclusive bot proof:
// the elements are unreachable by pointer, keyboard, or assistive
// technology. The response is always the same error payload so a bot never
// learns whether the trip registered.
func (h *HoneypotHandler) Trigger(c *gin.Context) {
	h.guard.TripHoneypot(c.Request.Context(), guard.Input{
		Headers:    c.Request.Header,
		RemoteAddr: c.Request.RemoteAddr,
		UserAgent:  c.Request.UserAgent(),
		RequestURI: c.Request.RequestURI,
	})

	c.JSON(http.StatusForbidden, models.Response{
		Code:    http.StatusForbidden,
		Message: "forbidden",
	})
}

// Markup serves the injectable snippet so page templates can embed the trap
// without hardcoding its path.
func (h *HoneypotHandler) Markup(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(guard.HoneypotMarkup(TrapPath)))
}
