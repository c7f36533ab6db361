package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// projectResp is the CMS-facing projection of a project row.
type projectResp struct {
	ID          uint64    `json:"id"`
	ClientID    uint64    `json:"client_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectResp(p repository.Project) projectResp {
	var desc *string
	if p.Description.Valid {
		desc = &p.Description.String
	}
	fmtDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}
	return projectResp{
		ID: p.ID, ClientID: p.ClientID, Title: p.Title, Description: desc,
		Status: p.Status, StartDate: fmtDate(p.StartDate), EndDate: fmtDate(p.EndDate),
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// CreateProject handles POST /v1/admin/projects. The client reference is
// verified before the row is written; a dangling client_id is a 409.
func (h *AdminHandler) CreateProject(c echo.Context) error {
	var body struct {
		ClientID    uint64  `json:"client_id"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	if body.ClientID == 0 {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(body.Title) == "" {
		missing = append(missing, "title")
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		status = repository.ProjectStatusActive
	}
	if !repository.IsValidProjectStatus(status) {
		missing = append(missing, "status")
	}
	start, ok := parseDate(body.StartDate)
	if !ok {
		missing = append(missing, "start_date")
	}
	end, ok := parseDate(body.EndDate)
	if !ok {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	p := repository.Project{
		ClientID:    body.ClientID,
		Title:       strings.TrimSpace(body.Title),
		Description: nullString(body.Description),
		Status:      status,
		StartDate:   start,
		EndDate:     end,
	}
	if err := h.Projects.Create(c.Request().Context(), &p); err != nil {
		if err == repository.ErrBadReference {
			return c.JSON(http.StatusConflict, echo.Map{"error": "client does not exist", "reference": "client_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"})
	}
	return c.JSON(http.StatusCreated, toProjectResp(p))
}

// ListProjects handles GET /v1/admin/projects with optional ?client_id.
func (h *AdminHandler) ListProjects(c echo.Context) error {
	var clientID uint64
	if v := c.QueryParam("client_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		clientID = n
	}
	limit, offset := parsePaging(c)
	items, err := h.Projects.List(c.Request().Context(), clientID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]projectResp, 0, len(items))
	for _, p := range items {
		out = append(out, toProjectResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// GetProject handles GET /v1/admin/projects/:id.
func (h *AdminHandler) GetProject(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Projects.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrProjectNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toProjectResp(p))
}

// UpdateProject handles PUT /v1/admin/projects/:id.
func (h *AdminHandler) UpdateProject(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		ClientID    *uint64 `json:"client_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	p, err := h.Projects.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrProjectNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var bad []string
	if body.ClientID != nil {
		if *body.ClientID == 0 {
			bad = append(bad, "client_id")
		} else {
			p.ClientID = *body.ClientID
		}
	}
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			bad = append(bad, "title")
		} else {
			p.Title = strings.TrimSpace(*body.Title)
		}
	}
	if body.Description != nil {
		p.Description = nullString(body.Description)
	}
	if body.Status != nil {
		if !repository.IsValidProjectStatus(*body.Status) {
			bad = append(bad, "status")
		} else {
			p.Status = *body.Status
		}
	}
	if body.StartDate != nil {
		d, ok := parseDate(*body.StartDate)
		if !ok {
			bad = append(bad, "start_date")
		} else {
			p.StartDate = d
		}
	}
	if body.EndDate != nil {
		d, ok := parseDate(*body.EndDate)
		if !ok {
			bad = append(bad, "end_date")
		} else {
			p.EndDate = d
		}
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": bad})
	}

	if err := h.Projects.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrBadReference {
			return c.JSON(http.StatusConflict, echo.Map{"error": "client does not exist", "reference": "client_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update project"})
	}
	return c.JSON(http.StatusOK, toProjectResp(p))
}

// DeleteProject handles DELETE /v1/admin/projects/:id. The delete is
// refused while milestones or payments still reference the project.
func (h *AdminHandler) DeleteProject(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Projects.Delete(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrProjectNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		case repository.ErrHasDependents:
			return c.JSON(http.StatusConflict, echo.Map{"error": "project still has milestones or payments"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
