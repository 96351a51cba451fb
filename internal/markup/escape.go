// Package markup renders the panel's HTML fragments. Every untrusted string
// passes through Escape before interpolation.
package markup

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape sanitizes untrusted text for interpolation into markup
func Escape(unsafe string) string {
	return escaper.Replace(unsafe)
}
