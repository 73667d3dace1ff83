package guard

import "strings"

// suspiciousPatterns are signatures of automated vulnerability scans: config
// probes, known injection endpoints, payload markers, path traversal. This
// is a coarse deny-list for scanner noise, not a WAF.
var suspiciousPatterns = []string{
	// config and VCS probes
	"wp-config",
	".env",
	".git",
	"etc/passwd",
	// known injection endpoints
	"xmlrpc.php",
	"wp-admin/install.php",
	"setup-config.php",
	"phpmyadmin",
	// payload markers
	"eval(",
	"base64_decode",
	"union select",
	"<script",
	// path traversal
	"../",
	"..\\",
	"%2e%2e",
	"%00",
}

// IsSuspiciousPath does a case-insensitive substring match of the full
// request URI (path plus query) against the signature list. Substring
// semantics means "/about-wp-config-explainer/" also matches; that
// false-positive mode is documented and accepted.
func IsSuspiciousPath(requestURI string) bool {
	uri := strings.ToLower(requestURI)
	for _, p := range suspiciousPatterns {
		if strings.Contains(uri, p) {
			return true
		}
	}
	return false
}
