package guard

import (
	"testing"
	"time"
)

func withFixedTime(t *testing.T, fixed time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })
}

func TestHashIPStableWithinMonth(t *testing.T) {
	withFixedTime(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))

	a := HashIP("203.0.113.7", "secret")
	b := HashIP("203.0.113.7", "secret")
	if a != b {
		t.Errorf("same IP, same month: %q != %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestHashIPRotatesAcrossMonths(t *testing.T) {
	withFixedTime(t, time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC))
	march := HashIP("203.0.113.7", "secret")

	withFixedTime(t, time.Date(2026, time.April, 1, 0, 1, 0, 0, time.UTC))
	april := HashIP("203.0.113.7", "secret")

	if march == april {
		t.Error("hash did not rotate across the month boundary")
	}
}

func TestHashIPDependsOnSecret(t *testing.T) {
	withFixedTime(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))

	if HashIP("203.0.113.7", "a") == HashIP("203.0.113.7", "b") {
		t.Error("different secrets produced the same hash")
	}
}

func TestKeyPrefix(t *testing.T) {
	withFixedTime(t, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))

	hash := HashIP("203.0.113.7", "secret")
	prefix := KeyPrefix(hash)
	if len(prefix) != 16 {
		t.Errorf("prefix length = %d, want 16", len(prefix))
	}
	if hash[:16] != prefix {
		t.Errorf("prefix %q is not the hash head", prefix)
	}
	if KeyPrefix("short") != "short" {
		t.Error("short input should pass through unchanged")
	}
}
