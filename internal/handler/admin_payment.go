package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// paymentResp is the CMS-facing projection of a payment row.
type paymentResp struct {
	ID          uint64    `json:"id"`
	ProjectID   *uint64   `json:"project_id"`
	ClientID    *uint64   `json:"client_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	PaidOn      *string   `json:"paid_on"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPaymentResp(p repository.Payment) paymentResp {
	var paid *string
	if p.PaidOn != nil {
		s := p.PaidOn.Format("2006-01-02")
		paid = &s
	}
	var notes *string
	if p.Notes.Valid {
		notes = &p.Notes.String
	}
	return paymentResp{
		ID: p.ID, ProjectID: p.ProjectID, ClientID: p.ClientID,
		AmountCents: p.AmountCents, Currency: p.Currency, Status: p.Status,
		PaidOn: paid, Notes: notes, CreatedAt: p.CreatedAt,
	}
}

// CreatePayment handles POST /v1/admin/payments. A payment must name a
// project, a client, or both; every named reference is verified.
func (h *AdminHandler) CreatePayment(c echo.Context) error {
	var body struct {
		ProjectID   *uint64 `json:"project_id"`
		ClientID    *uint64 `json:"client_id"`
		AmountCents int64   `json:"amount_cents"`
		Currency    string  `json:"currency"`
		Status      string  `json:"status"`
		PaidOn      string  `json:"paid_on"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	if body.ProjectID == nil && body.ClientID == nil {
		missing = append(missing, "project_id", "client_id")
	}
	if body.AmountCents <= 0 {
		missing = append(missing, "amount_cents")
	}
	currency := strings.ToUpper(strings.TrimSpace(body.Currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		missing = append(missing, "currency")
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		status = repository.PaymentStatusPending
	}
	if !repository.IsValidPaymentStatus(status) {
		missing = append(missing, "status")
	}
	paidOn, ok := parseDate(body.PaidOn)
	if !ok {
		missing = append(missing, "paid_on")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	p := repository.Payment{
		ProjectID:   body.ProjectID,
		ClientID:    body.ClientID,
		AmountCents: body.AmountCents,
		Currency:    currency,
		Status:      status,
		PaidOn:      paidOn,
		Notes:       nullString(body.Notes),
	}
	if err := h.Payments.Create(c.Request().Context(), &p); err != nil {
		if err == repository.ErrBadReference {
			return c.JSON(http.StatusConflict, echo.Map{"error": "referenced project or client does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create payment"})
	}
	return c.JSON(http.StatusCreated, toPaymentResp(p))
}

// ListPayments handles GET /v1/admin/payments with optional ?project_id
// or ?client_id filters.
func (h *AdminHandler) ListPayments(c echo.Context) error {
	var projectID, clientID uint64
	if v := c.QueryParam("project_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project_id"})
		}
		projectID = n
	}
	if v := c.QueryParam("client_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		clientID = n
	}
	limit, offset := parsePaging(c)
	items, err := h.Payments.List(c.Request().Context(), projectID, clientID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]paymentResp, 0, len(items))
	for _, p := range items {
		out = append(out, toPaymentResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPayment handles GET /v1/admin/payments/:id.
func (h *AdminHandler) GetPayment(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Payments.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// UpdatePayment handles PUT /v1/admin/payments/:id.
func (h *AdminHandler) UpdatePayment(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		ProjectID   *uint64 `json:"project_id"`
		ClientID    *uint64 `json:"client_id"`
		AmountCents *int64  `json:"amount_cents"`
		Currency    *string `json:"currency"`
		Status      *string `json:"status"`
		PaidOn      *string `json:"paid_on"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	p, err := h.Payments.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var bad []string
	if body.ProjectID != nil {
		if *body.ProjectID == 0 {
			p.ProjectID = nil
		} else {
			p.ProjectID = body.ProjectID
		}
	}
	if body.ClientID != nil {
		if *body.ClientID == 0 {
			p.ClientID = nil
		} else {
			p.ClientID = body.ClientID
		}
	}
	if p.ProjectID == nil && p.ClientID == nil {
		bad = append(bad, "project_id", "client_id")
	}
	if body.AmountCents != nil {
		if *body.AmountCents <= 0 {
			bad = append(bad, "amount_cents")
		} else {
			p.AmountCents = *body.AmountCents
		}
	}
	if body.Currency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*body.Currency))
		if len(cur) != 3 {
			bad = append(bad, "currency")
		} else {
			p.Currency = cur
		}
	}
	if body.Status != nil {
		if !repository.IsValidPaymentStatus(*body.Status) {
			bad = append(bad, "status")
		} else {
			p.Status = *body.Status
		}
	}
	if body.PaidOn != nil {
		d, ok := parseDate(*body.PaidOn)
		if !ok {
			bad = append(bad, "paid_on")
		} else {
			p.PaidOn = d
		}
	}
	if body.Notes != nil {
		p.Notes = nullString(body.Notes)
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": bad})
	}

	if err := h.Payments.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrBadReference {
			return c.JSON(http.StatusConflict, echo.Map{"error": "referenced project or client does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update payment"})
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// DeletePayment handles DELETE /v1/admin/payments/:id.
func (h *AdminHandler) DeletePayment(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Payments.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
