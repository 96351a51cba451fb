package markup

import "fmt"

// Loading returns the loading affordance rendered into a region while a
// network call is in flight.
func Loading(what string) string {
	return fmt.Sprintf(`<p class="loading">Loading %s...</p>`, Escape(what))
}

// Error returns the inline, region-scoped error fragment
func Error(message string) string {
	return fmt.Sprintf(`<p class="error">%s</p>`, Escape(message))
}

// NoResults returns the empty-list fragment
func NoResults(message string) string {
	return fmt.Sprintf(`<p class="no-results">%s</p>`, Escape(message))
}

// Link returns an anchor whose href and label are both escaped
func Link(href, label string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, Escape(href), Escape(label))
}
