package middleware

import (
	"microhub-backend/internal/guard"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Minimal static bodies. Blocked visitors get no diagnostic detail:
// revealing the trigger would help bots evade it.
const (
	blockedBody     = "<html><body><h1>403 Forbidden</h1></body></html>"
	rateLimitedBody = "<html><body><h1>429 Too Many Requests</h1></body></html>"
)

// GuardMiddleware runs the admission pipeline before any other handling and
// short-circuits with the decision's status on a block. Allowed requests
// carry the visitor hash in the context so downstream tracking reuses it.
func GuardMiddleware(g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Evaluate(c.Request.Context(), guard.Input{
			Headers:    c.Request.Header,
			RemoteAddr: c.Request.RemoteAddr,
			UserAgent:  c.Request.UserAgent(),
			RequestURI: c.Request.RequestURI,
		})

		if decision.Blocked {
			body := blockedBody
			if decision.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(decision.RetryAfter))
				body = rateLimitedBody
			}
			c.Data(decision.Status, "text/html; charset=utf-8", []byte(body))
			c.Abort()
			return
		}

		if decision.IPHash != "" {
			c.Set("ip_hash", decision.IPHash)
		}
		c.Next()
	}
}

// IPHash returns the visitor hash the guard stored for this request, or
// computes it fresh for bypassed routes.
func IPHash(c *gin.Context, g *guard.Guard) string {
	if hash, ok := c.Get("ip_hash"); ok {
		return hash.(string)
	}
	return g.Identify(guard.Input{
		Headers:    c.Request.Header,
		RemoteAddr: c.Request.RemoteAddr,
	})
}
