package guard

import "testing"

func TestIsSuspiciousPath(t *testing.T) {
	tests := []struct {
		uri  string
		want bool
	}{
		{"/wp-config.php", true},
		{"/WP-CONFIG.php", true},
		// Substring match: documented false-positive mode, not a bug.
		{"/about-wp-config-explainer/", true},
		{"/.env", true},
		{"/.git/config", true},
		{"/xmlrpc.php", true},
		{"/index.php?x=../../etc/passwd", true},
		{"/search?q=union+select", false},
		{"/search?q=UNION SELECT password", true},
		{"/page?next=%2e%2e%2f", true},
		{"/comment?body=<script>alert(1)</script>", true},
		{"/papers/electron-microscopy", false},
		{"/", false},
		{"/api/track/pageview", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := IsSuspiciousPath(tt.uri); got != tt.want {
				t.Errorf("IsSuspiciousPath(%q) = %v, want %v", tt.uri, got, tt.want)
			}
		})
	}
}
