package handlers

import "testing"

func TestNewSessionToken(t *testing.T) {
	a := newSessionToken()
	b := newSessionToken()

	if len(a) != 32 {
		t.Errorf("token length = %d, want 32", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
	if !isSessionToken(a) {
		t.Errorf("generated token %q fails validation", a)
	}
}

func TestIsSessionToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"", false},
		{"short", false},
		{"0123456789abcdef0123456789abcdeg", false}, // non-hex char
		{"0123456789abcdef0123456789abcdef00", false},
	}
	for _, tt := range tests {
		if got := isSessionToken(tt.token); got != tt.want {
			t.Errorf("isSessionToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
