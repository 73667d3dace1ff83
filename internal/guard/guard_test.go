package guard

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	events []BlockEvent
}

func (s *recordingSink) LogBlock(_ context.Context, event BlockEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) last(t *testing.T) BlockEvent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		t.Fatal("no audit event recorded")
	}
	return s.events[len(s.events)-1]
}

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

func testGuard(t *testing.T) (*Guard, *recordingSink) {
	t.Helper()
	withFixedTime(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	g := New(NewMemoryStore(), sink, Options{
		HashSecret:     "test-secret",
		RateLimit:      60,
		RateWindow:     time.Minute,
		HoneypotTTL:    time.Hour,
		BypassPrefixes: []string{"/health", "/api/admin"},
	})
	return g, sink
}

func request(ip, ua, uri string) Input {
	h := http.Header{}
	h.Set("X-Real-IP", ip)
	return Input{
		Headers:    h,
		RemoteAddr: "10.0.0.1:1234",
		UserAgent:  ua,
		RequestURI: uri,
	}
}

func TestEvaluateAllowsBrowser(t *testing.T) {
	g, _ := testGuard(t)

	d := g.Evaluate(context.Background(), request("203.0.113.7", browserUA, "/papers/cryo-em"))
	if d.Blocked {
		t.Fatalf("browser request blocked: %+v", d)
	}
	if d.IPHash == "" {
		t.Error("allow decision should expose the visitor hash")
	}
}

// A returning visitor under the limit must keep passing: their rate counter
// must never surface as a honeypot flag on later requests.
func TestEvaluateRepeatVisitorStaysAllowed(t *testing.T) {
	g, _ := testGuard(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d := g.Evaluate(ctx, request("203.0.113.7", browserUA, "/papers/cryo-em"))
		if d.Blocked {
			t.Fatalf("request %d blocked: %+v", i, d)
		}
	}
}

func TestEvaluateEmptyUA(t *testing.T) {
	g, sink := testGuard(t)

	d := g.Evaluate(context.Background(), request("203.0.113.7", "", "/"))
	if !d.Blocked || d.Reason != ReasonEmptyUA || d.Status != http.StatusForbidden {
		t.Fatalf("got %+v, want empty_ua 403", d)
	}
	if sink.last(t).Reason != ReasonEmptyUA {
		t.Error("audit reason mismatch")
	}

	// Whitespace-only is still empty_ua, never bad_ua.
	d = g.Evaluate(context.Background(), request("203.0.113.8", "   ", "/"))
	if d.Reason != ReasonEmptyUA {
		t.Errorf("whitespace UA reason = %q, want empty_ua", d.Reason)
	}
}

func TestEvaluateBadUA(t *testing.T) {
	g, sink := testGuard(t)

	d := g.Evaluate(context.Background(), request("203.0.113.7", "curl/7.68.0", "/"))
	if !d.Blocked || d.Reason != ReasonBadUA || d.Status != http.StatusForbidden {
		t.Fatalf("got %+v, want bad_ua 403", d)
	}
	event := sink.last(t)
	if event.UserAgent != "curl/7.68.0" || event.PageURL != "/" {
		t.Errorf("audit event = %+v", event)
	}
}

func TestEvaluateAllowedBotPasses(t *testing.T) {
	g, _ := testGuard(t)

	ua := "Mozilla/5.0 (compatible; Bingbot/2.0; +http://www.bing.com/bingbot.htm)"
	d := g.Evaluate(context.Background(), request("203.0.113.7", ua, "/papers"))
	if d.Blocked {
		t.Fatalf("allowed bot blocked: %+v", d)
	}
}

func TestEvaluateRateLimit(t *testing.T) {
	g, sink := testGuard(t)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		d := g.Evaluate(ctx, request("203.0.113.7", browserUA, "/papers"))
		if d.Blocked {
			t.Fatalf("request %d blocked: %+v", i, d)
		}
	}

	d := g.Evaluate(ctx, request("203.0.113.7", browserUA, "/papers"))
	if !d.Blocked || d.Reason != ReasonRateLimit {
		t.Fatalf("request 61: got %+v, want rate_limit block", d)
	}
	if d.Status != http.StatusTooManyRequests || d.RetryAfter != 60 {
		t.Errorf("got status=%d retryAfter=%d, want 429 with Retry-After 60", d.Status, d.RetryAfter)
	}
	if sink.last(t).Reason != ReasonRateLimit {
		t.Error("audit reason mismatch")
	}

	// Another visitor is unaffected.
	if d := g.Evaluate(ctx, request("198.51.100.9", browserUA, "/papers")); d.Blocked {
		t.Errorf("other visitor blocked: %+v", d)
	}
}

func TestEvaluateSuspiciousPath(t *testing.T) {
	g, sink := testGuard(t)

	d := g.Evaluate(context.Background(), request("203.0.113.7", browserUA, "/index.php?x=../../etc/passwd"))
	if !d.Blocked || d.Reason != ReasonSuspicious || d.Status != http.StatusForbidden {
		t.Fatalf("got %+v, want suspicious_pattern 403", d)
	}
	if sink.last(t).PageURL != "/index.php?x=../../etc/passwd" {
		t.Error("audit page URL mismatch")
	}
}

func TestEvaluateBypassPrefixes(t *testing.T) {
	g, _ := testGuard(t)

	// Even a scanner-looking request sails through on a bypassed prefix.
	d := g.Evaluate(context.Background(), request("203.0.113.7", "curl/7.68.0", "/health"))
	if d.Blocked {
		t.Fatalf("bypassed request blocked: %+v", d)
	}
}

func TestHoneypotTripBlocksFutureRequests(t *testing.T) {
	g, sink := testGuard(t)
	ctx := context.Background()

	// The trap fires regardless of how normal the request looks.
	d := g.TripHoneypot(ctx, request("203.0.113.7", browserUA, "/api/track/archive"))
	if !d.Blocked || d.Reason != ReasonHoneypot || d.Status != http.StatusForbidden {
		t.Fatalf("trip: got %+v", d)
	}
	if sink.last(t).Reason != ReasonHoneypot {
		t.Error("audit reason mismatch")
	}

	// The written flag now blocks the pipeline for the same visitor.
	d = g.Evaluate(ctx, request("203.0.113.7", browserUA, "/papers"))
	if !d.Blocked || d.Reason != ReasonHoneypot {
		t.Fatalf("follow-up: got %+v, want honeypot block", d)
	}

	// A different visitor is untouched.
	if d := g.Evaluate(ctx, request("198.51.100.9", browserUA, "/papers")); d.Blocked {
		t.Errorf("other visitor blocked: %+v", d)
	}
}

func TestEvaluateFailsOpenOnStoreOutage(t *testing.T) {
	withFixedTime(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))
	g := New(failingStore{}, &recordingSink{}, Options{HashSecret: "test-secret"})

	d := g.Evaluate(context.Background(), request("203.0.113.7", browserUA, "/papers"))
	if d.Blocked {
		t.Fatalf("store outage blocked a request: %+v", d)
	}
}

func TestEvaluateOrderEmptyBeforeRate(t *testing.T) {
	g, _ := testGuard(t)
	ctx := context.Background()

	// Exhaust the window with browser traffic, then send an empty UA from
	// the same IP: the UA check fires first.
	for i := 0; i <= 60; i++ {
		g.Evaluate(ctx, request("203.0.113.7", browserUA, "/papers"))
	}
	d := g.Evaluate(ctx, request("203.0.113.7", "", "/papers"))
	if d.Reason != ReasonEmptyUA {
		t.Errorf("reason = %q, want empty_ua before rate_limit", d.Reason)
	}
}
