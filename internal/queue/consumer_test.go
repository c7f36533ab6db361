package queue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLogLine(t *testing.T) {
	ev := ContentChangedEvent{
		Kind:      "blog",
		Action:    ActionUpdated,
		ID:        7,
		Slug:      "launch-notes",
		Title:     "Launch Notes",
		Status:    "published",
		ChangedBy: "admin@example.com",
		ChangedAt: "2026-01-02T15:04:05Z",
	}
	line := FormatLogLine(ev)
	assert.True(t, strings.HasSuffix(line, "\n"), "log line must end with newline")
	assert.Equal(t,
		`[2026-01-02T15:04:05Z] Content updated | kind=blog | id=7 | slug="launch-notes" | title="Launch Notes" | status="published" | by=admin@example.com`+"\n",
		line)
}

func TestHandleMessageRejectsBadJSON(t *testing.T) {
	err := handleMessage([]byte(`{"kind":`))
	assert.Error(t, err)
}
