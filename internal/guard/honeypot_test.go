package guard

import (
	"strings"
	"testing"
)

func TestHoneypotMarkup(t *testing.T) {
	markup := HoneypotMarkup("/api/track/archive")

	for _, want := range []string{
		`href="/api/track/archive"`,
		`action="/api/track/archive"`,
		`tabindex="-1"`,
		`aria-hidden="true"`,
		"left:-9999px",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q:\n%s", want, markup)
		}
	}
}
