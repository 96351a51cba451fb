package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Steve broke rule 3",
			expected: "Steve broke rule 3",
		},
		{
			name:     "script tag neutralized",
			input:    `<script>alert("x")</script>`,
			expected: "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;",
		},
		{
			name:     "ampersand escaped first",
			input:    "Tom & Jerry",
			expected: "Tom &amp; Jerry",
		},
		{
			name:     "single quotes escaped",
			input:    "it's o'clock",
			expected: "it&#039;s o&#039;clock",
		},
		{
			name:     "already escaped text is escaped again",
			input:    "&amp;",
			expected: "&amp;amp;",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.input))
		})
	}
}

func TestFragments(t *testing.T) {
	assert.Equal(t, `<p class="loading">Loading warns...</p>`, Loading("warns"))
	assert.Equal(t, `<p class="error">boom</p>`, Error("boom"))
	assert.Equal(t, `<p class="no-results">No bans found.</p>`, NoResults("No bans found."))
	assert.Equal(t,
		`<a href="https://example.com/e" target="_blank">View Evidence</a>`,
		Link("https://example.com/e", "View Evidence"))
}

func TestFragmentsEscapeUntrustedText(t *testing.T) {
	assert.NotContains(t, Error(`<img src=x>`), "<img")
	assert.NotContains(t, Link(`"><script>`, "x"), "<script")
}
