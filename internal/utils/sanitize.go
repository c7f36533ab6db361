package utils

import "github.com/microcosm-cc/bluemonday"

// richTextPolicy allows the tags the CMS editor emits (headings, lists,
// links, images, code blocks) while stripping scripts and event handlers.
var richTextPolicy = bluemonday.UGCPolicy()

// SanitizeHTML cleans rich-text input (blog content, portfolio descriptions)
// before it is persisted.  Output is safe to serve to anonymous visitors.
func SanitizeHTML(html string) string {
	return richTextPolicy.Sanitize(html)
}
