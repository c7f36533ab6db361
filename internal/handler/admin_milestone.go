package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// milestoneResp is the CMS-facing projection of a milestone row.
type milestoneResp struct {
	ID          uint64    `json:"id"`
	ProjectID   uint64    `json:"project_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	DueDate     *string   `json:"due_date"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toMilestoneResp(m repository.Milestone) milestoneResp {
	var desc *string
	if m.Description.Valid {
		desc = &m.Description.String
	}
	var due *string
	if m.DueDate != nil {
		s := m.DueDate.Format("2006-01-02")
		due = &s
	}
	return milestoneResp{
		ID: m.ID, ProjectID: m.ProjectID, Title: m.Title, Description: desc,
		Status: m.Status, DueDate: due, OrderIndex: m.OrderIndex,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

// CreateMilestone handles POST /v1/admin/milestones. New milestones start
// in the pending state unless a valid working state is supplied; the
// project reference is verified before the write.
func (h *AdminHandler) CreateMilestone(c echo.Context) error {
	var body struct {
		ProjectID   uint64  `json:"project_id"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
		DueDate     string  `json:"due_date"`
		OrderIndex  int     `json:"order_index"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	if body.ProjectID == 0 {
		missing = append(missing, "project_id")
	}
	if strings.TrimSpace(body.Title) == "" {
		missing = append(missing, "title")
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		status = repository.MilestoneStatusPending
	}
	if !repository.IsValidMilestoneStatus(status) {
		missing = append(missing, "status")
	}
	due, ok := parseDate(body.DueDate)
	if !ok {
		missing = append(missing, "due_date")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	m := repository.Milestone{
		ProjectID:   body.ProjectID,
		Title:       strings.TrimSpace(body.Title),
		Description: nullString(body.Description),
		Status:      status,
		DueDate:     due,
		OrderIndex:  body.OrderIndex,
	}
	if err := h.Milestones.Create(c.Request().Context(), &m); err != nil {
		if err == repository.ErrBadReference {
			return c.JSON(http.StatusConflict, echo.Map{"error": "project does not exist", "reference": "project_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create milestone"})
	}
	return c.JSON(http.StatusCreated, toMilestoneResp(m))
}

// ListMilestones handles GET /v1/admin/milestones?project_id=N. Rows come
// back in display order: order_index ascending, then id ascending.
func (h *AdminHandler) ListMilestones(c echo.Context) error {
	v := c.QueryParam("project_id")
	if v == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"})
	}
	projectID, err := strconv.ParseUint(v, 10, 64)
	if err != nil || projectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project_id"})
	}
	exists, err := h.Projects.Exists(c.Request().Context(), projectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	limit, offset := parsePaging(c)
	items, err := h.Milestones.ListByProject(c.Request().Context(), projectID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]milestoneResp, 0, len(items))
	for _, m := range items {
		out = append(out, toMilestoneResp(m))
	}
	return c.JSON(http.StatusOK, out)
}

// GetMilestone handles GET /v1/admin/milestones/:id.
func (h *AdminHandler) GetMilestone(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Milestones.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrMilestoneNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "milestone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMilestoneResp(m))
}

// UpdateMilestone handles PUT /v1/admin/milestones/:id. Status moves are
// checked against the milestone state machine; completed and cancelled
// are terminal.
func (h *AdminHandler) UpdateMilestone(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		ProjectID   *uint64 `json:"project_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		DueDate     *string `json:"due_date"`
		OrderIndex  *int    `json:"order_index"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	m, err := h.Milestones.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrMilestoneNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "milestone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var bad []string
	if body.ProjectID != nil {
		if *body.ProjectID == 0 {
			bad = append(bad, "project_id")
		} else {
			m.ProjectID = *body.ProjectID
		}
	}
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			bad = append(bad, "title")
		} else {
			m.Title = strings.TrimSpace(*body.Title)
		}
	}
	if body.Description != nil {
		m.Description = nullString(body.Description)
	}
	if body.Status != nil {
		if !repository.IsValidMilestoneStatus(*body.Status) {
			bad = append(bad, "status")
		} else {
			m.Status = *body.Status
		}
	}
	if body.DueDate != nil {
		d, ok := parseDate(*body.DueDate)
		if !ok {
			bad = append(bad, "due_date")
		} else {
			m.DueDate = d
		}
	}
	if body.OrderIndex != nil {
		m.OrderIndex = *body.OrderIndex
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": bad})
	}

	if err := h.Milestones.Update(c.Request().Context(), &m); err != nil {
		switch err {
		case repository.ErrBadTransition:
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		case repository.ErrBadReference:
			return c.JSON(http.StatusConflict, echo.Map{"error": "project does not exist", "reference": "project_id"})
		case repository.ErrMilestoneNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "milestone not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update milestone"})
		}
	}
	return c.JSON(http.StatusOK, toMilestoneResp(m))
}

// DeleteMilestone handles DELETE /v1/admin/milestones/:id.
func (h *AdminHandler) DeleteMilestone(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Milestones.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrMilestoneNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "milestone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
