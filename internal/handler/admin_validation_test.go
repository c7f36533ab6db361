package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValidation(t *testing.T, body []byte) []string {
	t.Helper()
	var resp struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "validation failed", resp.Error)
	return resp.Fields
}

func TestCreateBlogValidation(t *testing.T) {
	h := &AdminHandler{}
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "missing title",
			body:   `{"content":"<p>hi</p>"}`,
			fields: []string{"title", "slug"},
		},
		{
			name:   "bad explicit slug",
			body:   `{"title":"Hello","slug":"Not A Slug"}`,
			fields: []string{"slug"},
		},
		{
			name:   "unknown status",
			body:   `{"title":"Hello","status":"archived"}`,
			fields: []string{"status"},
		},
		{
			name:   "bad published_on date",
			body:   `{"title":"Hello","published_on":"31/12/2025"}`,
			fields: []string{"published_on"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/v1/admin/blogs", tt.body)
			require.NoError(t, h.CreateBlog(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.fields, decodeValidation(t, rec.Body.Bytes()))
		})
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	h := &AdminHandler{}
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "no references",
			body:   `{"amount_cents":1000}`,
			fields: []string{"project_id", "client_id"},
		},
		{
			name:   "zero amount",
			body:   `{"project_id":1,"amount_cents":0}`,
			fields: []string{"amount_cents"},
		},
		{
			name:   "bad currency",
			body:   `{"client_id":1,"amount_cents":500,"currency":"DOLLARS"}`,
			fields: []string{"currency"},
		},
		{
			name:   "unknown status",
			body:   `{"client_id":1,"amount_cents":500,"status":"maybe"}`,
			fields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/v1/admin/payments", tt.body)
			require.NoError(t, h.CreatePayment(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.fields, decodeValidation(t, rec.Body.Bytes()))
		})
	}
}
