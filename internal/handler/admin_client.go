package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// clientResp is the CMS-facing projection of a client row. Clients are
// never exposed through the public API.
type clientResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toClientResp(c repository.Client) clientResp {
	var notes *string
	if c.Notes.Valid {
		notes = &c.Notes.String
	}
	return clientResp{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Company: c.Company,
		Notes: notes, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// CreateClient handles POST /v1/admin/clients.
func (h *AdminHandler) CreateClient(c echo.Context) error {
	var body struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   string  `json:"phone"`
		Company string  `json:"company"`
		Notes   *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": []string{"name"}})
	}

	cl := repository.Client{
		Name:    strings.TrimSpace(body.Name),
		Email:   strings.ToLower(strings.TrimSpace(body.Email)),
		Phone:   body.Phone,
		Company: body.Company,
		Notes:   nullString(body.Notes),
	}
	if err := h.Clients.Create(c.Request().Context(), &cl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create client"})
	}
	return c.JSON(http.StatusCreated, toClientResp(cl))
}

// ListClients handles GET /v1/admin/clients.
func (h *AdminHandler) ListClients(c echo.Context) error {
	limit, offset := parsePaging(c)
	items, err := h.Clients.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]clientResp, 0, len(items))
	for _, cl := range items {
		out = append(out, toClientResp(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// GetClient handles GET /v1/admin/clients/:id.
func (h *AdminHandler) GetClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cl, err := h.Clients.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrClientNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toClientResp(cl))
}

// UpdateClient handles PUT /v1/admin/clients/:id.
func (h *AdminHandler) UpdateClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Company *string `json:"company"`
		Notes   *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	cl, err := h.Clients.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrClientNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if body.Name != nil {
		if strings.TrimSpace(*body.Name) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": []string{"name"}})
		}
		cl.Name = strings.TrimSpace(*body.Name)
	}
	if body.Email != nil {
		cl.Email = strings.ToLower(strings.TrimSpace(*body.Email))
	}
	if body.Phone != nil {
		cl.Phone = *body.Phone
	}
	if body.Company != nil {
		cl.Company = *body.Company
	}
	if body.Notes != nil {
		cl.Notes = nullString(body.Notes)
	}

	if err := h.Clients.Update(c.Request().Context(), &cl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update client"})
	}
	return c.JSON(http.StatusOK, toClientResp(cl))
}

// DeleteClient handles DELETE /v1/admin/clients/:id. The delete is
// refused while projects still reference the client.
func (h *AdminHandler) DeleteClient(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Clients.Delete(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrClientNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		case repository.ErrHasDependents:
			return c.JSON(http.StatusConflict, echo.Map{"error": "client still has projects"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
