package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// submissionResp is the CMS-facing projection of a contact submission.
// Submissions are read-only once created; the CMS can only list and
// inspect them.
type submissionResp struct {
	ID          uint64    `json:"id"`
	Reference   string    `json:"reference"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func toSubmissionResp(s repository.ContactSubmission) submissionResp {
	var phone *string
	if s.Phone.Valid {
		phone = &s.Phone.String
	}
	return submissionResp{
		ID: s.ID, Reference: s.Reference, Name: s.Name, Email: s.Email,
		Phone: phone, Subject: s.Subject, Message: s.Message, SubmittedAt: s.SubmittedAt,
	}
}

// ListContactSubmissions handles GET /v1/admin/contact-submissions.
func (h *AdminHandler) ListContactSubmissions(c echo.Context) error {
	limit, offset := parsePaging(c)
	items, err := h.Contacts.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]submissionResp, 0, len(items))
	for _, s := range items {
		out = append(out, toSubmissionResp(s))
	}
	return c.JSON(http.StatusOK, out)
}

// GetContactSubmission handles GET /v1/admin/contact-submissions/:id.
func (h *AdminHandler) GetContactSubmission(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Contacts.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrSubmissionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toSubmissionResp(s))
}
