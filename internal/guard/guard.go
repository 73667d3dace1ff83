package guard

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Block reasons recorded in the audit log.
const (
	ReasonEmptyUA    = "empty_ua"
	ReasonBadUA      = "bad_ua"
	ReasonRateLimit  = "rate_limit"
	ReasonSuspicious = "suspicious_pattern"
	ReasonHoneypot   = "honeypot"
)

// Input carries the request metadata the pipeline needs. Everything is
// available synchronously at request time; no challenges, no lookups against
// external services.
type Input struct {
	Headers    http.Header
	RemoteAddr string
	UserAgent  string
	RequestURI string
}

// Decision is the terminal outcome of one pipeline run. Block outcomes are
// ordinary values mapped to responses by the HTTP layer, never panics or
// aborts inside the guard.
type Decision struct {
	Blocked    bool
	Reason     string
	Status     int
	RetryAfter int // seconds, only set for rate blocks

	// IPHash is the visitor digest computed during evaluation, exposed so
	// callers can reuse it without re-hashing.
	IPHash string
}

var allow = Decision{Status: http.StatusOK}

// BlockEvent is what the guard hands to the audit sink on every block.
type BlockEvent struct {
	IPHash    string
	UserAgent string
	Reason    string
	PageURL   string
}

// AuditSink receives block events. Writes are best-effort: implementations
// must swallow storage errors so a missing audit table never fails the
// request lifecycle.
type AuditSink interface {
	LogBlock(ctx context.Context, event BlockEvent)
}

// Guard runs the admission pipeline on every frontend request: block-flag
// check, empty UA, denied UA, rate limit, suspicious path, in that order.
// Cheapest and most certain signals come first; any hit short-circuits the
// rest.
type Guard struct {
	secret         string
	store          Store
	limiter        *Limiter
	audit          AuditSink
	honeypotTTL    time.Duration
	bypassPrefixes []string
}

type Options struct {
	HashSecret     string
	RateLimit      int
	RateWindow     time.Duration
	HoneypotTTL    time.Duration
	BypassPrefixes []string
}

func New(store Store, audit AuditSink, opts Options) *Guard {
	if opts.RateLimit == 0 {
		opts.RateLimit = 60
	}
	if opts.RateWindow == 0 {
		opts.RateWindow = 60 * time.Second
	}
	if opts.HoneypotTTL == 0 {
		opts.HoneypotTTL = time.Hour
	}
	return &Guard{
		secret:         opts.HashSecret,
		store:          store,
		limiter:        NewLimiter(store, opts.RateLimit, opts.RateWindow),
		audit:          audit,
		honeypotTTL:    opts.HoneypotTTL,
		bypassPrefixes: opts.BypassPrefixes,
	}
}

// Identify resolves and hashes the visitor address for the given input.
func (g *Guard) Identify(in Input) string {
	return HashIP(ResolveIP(in.Headers, in.RemoteAddr), g.secret)
}

// Evaluate runs the pipeline and returns the terminal decision.
func (g *Guard) Evaluate(ctx context.Context, in Input) Decision {
	for _, prefix := range g.bypassPrefixes {
		if strings.HasPrefix(in.RequestURI, prefix) {
			return allow
		}
	}

	ipHash := g.Identify(in)
	key := KeyPrefix(ipHash)

	// Honeypot block flag. The trap writes it; the pipeline honors it for
	// the flag's lifetime. Store errors fail open.
	if flagged, err := g.store.HasFlag(ctx, key); err != nil {
		logrus.WithError(err).Warn("guard: block flag lookup failed, failing open")
	} else if flagged {
		return g.block(ctx, in, ipHash, ReasonHoneypot, http.StatusForbidden, 0)
	}

	if strings.TrimSpace(in.UserAgent) == "" {
		return g.block(ctx, in, ipHash, ReasonEmptyUA, http.StatusForbidden, 0)
	}

	if c := Classify(in.UserAgent); c.IsBot && !c.Allowed {
		return g.block(ctx, in, ipHash, ReasonBadUA, http.StatusForbidden, 0)
	}

	if limited, err := g.limiter.Hit(ctx, key); err != nil {
		logrus.WithError(err).Warn("guard: rate limiter unavailable, failing open")
	} else if limited {
		retry := int(g.limiter.Window().Seconds())
		return g.block(ctx, in, ipHash, ReasonRateLimit, http.StatusTooManyRequests, retry)
	}

	if IsSuspiciousPath(in.RequestURI) {
		return g.block(ctx, in, ipHash, ReasonSuspicious, http.StatusForbidden, 0)
	}

	d := allow
	d.IPHash = ipHash
	return d
}

// TripHoneypot handles a trap activation: any hit is conclusive bot proof.
// It writes the block flag and the audit row regardless of prior state.
func (g *Guard) TripHoneypot(ctx context.Context, in Input) Decision {
	ipHash := g.Identify(in)
	if err := g.store.SetFlag(ctx, KeyPrefix(ipHash), g.honeypotTTL); err != nil {
		logrus.WithError(err).Warn("guard: honeypot flag write failed")
	}
	return g.block(ctx, in, ipHash, ReasonHoneypot, http.StatusForbidden, 0)
}

func (g *Guard) block(ctx context.Context, in Input, ipHash, reason string, status, retryAfter int) Decision {
	if g.audit != nil {
		g.audit.LogBlock(ctx, BlockEvent{
			IPHash:    ipHash,
			UserAgent: in.UserAgent,
			Reason:    reason,
			PageURL:   in.RequestURI,
		})
	}
	logrus.WithFields(logrus.Fields{
		"ip_hash": KeyPrefix(ipHash),
		"reason":  reason,
		"uri":     in.RequestURI,
	}).Info("guard: request blocked")

	return Decision{
		Blocked:    true,
		Reason:     reason,
		Status:     status,
		RetryAfter: retryAfter,
		IPHash:     ipHash,
	}
}
