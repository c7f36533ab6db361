package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation runs before any repository access, so a zero-value handler
// is enough to exercise the rejection paths.

func TestSubmitContactRejectsMalformedBody(t *testing.T) {
	h := &PublicHandler{}
	c, rec := postJSON("/v1/contact", `not json`)
	require.NoError(t, h.SubmitContact(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContactValidation(t *testing.T) {
	h := &PublicHandler{}
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "empty body",
			body:   `{}`,
			fields: []string{"name", "email", "subject", "message"},
		},
		{
			name:   "invalid email",
			body:   `{"name":"Ada","email":"not-an-email","subject":"Hi","message":"Hello"}`,
			fields: []string{"email"},
		},
		{
			name:   "whitespace-only message",
			body:   `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"   "}`,
			fields: []string{"message"},
		},
		{
			name:   "missing subject",
			body:   `{"name":"Ada","email":"ada@example.com","message":"Hello"}`,
			fields: []string{"subject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/v1/contact", tt.body)
			require.NoError(t, h.SubmitContact(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error  string   `json:"error"`
				Fields []string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation failed", resp.Error)
			assert.Equal(t, tt.fields, resp.Fields)
		})
	}
}
