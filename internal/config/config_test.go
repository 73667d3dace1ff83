package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	if cfg.Guard.RateLimit != 60 {
		t.Errorf("RateLimit = %d, want 60", cfg.Guard.RateLimit)
	}
	if cfg.Guard.RateWindowSeconds != 60 {
		t.Errorf("RateWindowSeconds = %d, want 60", cfg.Guard.RateWindowSeconds)
	}
	if cfg.Guard.HoneypotBlockMinutes != 60 {
		t.Errorf("HoneypotBlockMinutes = %d, want 60", cfg.Guard.HoneypotBlockMinutes)
	}
	if cfg.Tracking.SessionTTLMinutes != 30 {
		t.Errorf("SessionTTLMinutes = %d, want 30", cfg.Tracking.SessionTTLMinutes)
	}
	if cfg.Tracking.MaxDurationSeconds != 1800 {
		t.Errorf("MaxDurationSeconds = %d, want 1800", cfg.Tracking.MaxDurationSeconds)
	}
	if cfg.Retention.Days != 90 {
		t.Errorf("Retention.Days = %d, want 90", cfg.Retention.Days)
	}
	if !cfg.HasInsecureSecret() {
		t.Error("unset secret should report insecure")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GUARD_HASH_SECRET", "deploy-secret")
	t.Setenv("GUARD_RATE_LIMIT", "120")
	t.Setenv("GUARD_DISABLED", "true")

	cfg := &Config{}
	cfg.overrideFromEnv()
	cfg.setDefaults()

	if cfg.Guard.HashSecret != "deploy-secret" {
		t.Errorf("HashSecret = %q", cfg.Guard.HashSecret)
	}
	if cfg.HasInsecureSecret() {
		t.Error("configured secret reported as insecure")
	}
	if cfg.Guard.RateLimit != 120 {
		t.Errorf("RateLimit = %d, want 120", cfg.Guard.RateLimit)
	}
	if !cfg.Guard.Disabled {
		t.Error("GUARD_DISABLED=true should disable the guard")
	}
}
