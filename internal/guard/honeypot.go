package guard

import "fmt"

// HoneypotMarkup returns the invisible link and form injected into every
// rendered page. Both target the trap endpoint and are unreachable through
// normal interaction: off-screen, removed from tab order, hidden from
// assistive technology. Only automated link-followers and form-fillers
// touch them.
func HoneypotMarkup(trapPath string) string {
	return fmt.Sprintf(`<div style="position:absolute;left:-9999px;top:-9999px" aria-hidden="true">`+
		`<a href="%[1]s" tabindex="-1" rel="nofollow">archive</a>`+
		`<form action="%[1]s" method="post"><input type="text" name="website" tabindex="-1" autocomplete="off"></form>`+
		`</div>`, trapPath)
}
