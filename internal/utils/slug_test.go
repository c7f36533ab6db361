package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation stripped",
			input:    "Launching v2, Finally!",
			expected: "launching-v2-finally",
		},
		{
			name:     "accents folded",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "multiple spaces collapse",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "surrounding hyphens trimmed",
			input:    "  - Hello World -  ",
			expected: "hello-world",
		},
		{
			name:     "only special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "non-latin script drops out",
			input:    "日本語タイトル",
			expected: "",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "valid simple slug", input: "hello-world", expected: true},
		{name: "valid with numbers", input: "post-123", expected: true},
		{name: "valid single word", input: "hello", expected: true},
		{name: "invalid empty", input: "", expected: false},
		{name: "invalid uppercase", input: "Hello-World", expected: false},
		{name: "invalid spaces", input: "hello world", expected: false},
		{name: "invalid special chars", input: "hello!world", expected: false},
		{name: "invalid leading hyphen", input: "-hello", expected: false},
		{name: "invalid trailing hyphen", input: "hello-", expected: false},
		{name: "invalid consecutive hyphens", input: "hello--world", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidSlug(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
