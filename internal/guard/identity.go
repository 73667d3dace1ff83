package guard

import (
	"net/http"
	"net/netip"
	"strings"
)

// UnknownIP is returned when no header or the remote address yields a
// syntactically valid IP.
const UnknownIP = "0.0.0.0"

// ipHeaders is the priority order for resolving the real client address
// behind CDNs and reverse proxies.
var ipHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// ResolveIP derives the visitor address from proxy headers, falling back to
// the direct remote address. Invalid candidates fall through to the next
// header; if everything is exhausted it returns UnknownIP. Never fails.
func ResolveIP(headers http.Header, remoteAddr string) string {
	for _, name := range ipHeaders {
		val := headers.Get(name)
		if val == "" {
			continue
		}
		// X-Forwarded-For chains: first segment is the client.
		if idx := strings.IndexByte(val, ','); idx >= 0 {
			val = val[:idx]
		}
		if ip := normalizeIP(val); ip != "" {
			return ip
		}
	}
	if ip := normalizeIP(remoteAddr); ip != "" {
		return ip
	}
	return UnknownIP
}

// normalizeIP trims whitespace, strips a port if present, and validates the
// result as an IPv4 or IPv6 address. Returns "" if invalid.
func normalizeIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(addr); err == nil {
		return ap.Addr().String()
	}
	if ip, err := netip.ParseAddr(addr); err == nil {
		return ip.String()
	}
	return ""
}
