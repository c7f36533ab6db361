package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag stripped",
			input:    `<p>hi</p><script>alert(1)</script>`,
			expected: `<p>hi</p>`,
		},
		{
			name:     "event handler stripped",
			input:    `<p onclick="steal()">hi</p>`,
			expected: `<p>hi</p>`,
		},
		{
			name:     "formatting kept",
			input:    `<h2>Title</h2><ul><li><strong>bold</strong></li></ul>`,
			expected: `<h2>Title</h2><ul><li><strong>bold</strong></li></ul>`,
		},
		{
			name:     "javascript href stripped",
			input:    `<a href="javascript:alert(1)">x</a>`,
			expected: `x`,
		},
		{
			name:     "plain text untouched",
			input:    "just some text",
			expected: "just some text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeHTML(tt.input))
		})
	}
}
