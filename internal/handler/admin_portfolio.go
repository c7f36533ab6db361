package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/queue"
	"github.com/conbyt/conbyt-cms/internal/repository"
	"github.com/conbyt/conbyt-cms/internal/utils"
)

// portfolioResp is the CMS-facing projection of a portfolio row.
type portfolioResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	TechStack   []string  `json:"tech_stack"`
	LiveURL     string    `json:"live_url"`
	GithubURL   string    `json:"github_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPortfolioResp(p repository.Portfolio) portfolioResp {
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	return portfolioResp{
		ID: p.ID, Title: p.Title, Slug: p.Slug, Description: p.Description,
		ImageURL: p.ImageURL, TechStack: stack, LiveURL: p.LiveURL, GithubURL: p.GithubURL,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// CreatePortfolio handles POST /v1/admin/portfolios.
func (h *AdminHandler) CreatePortfolio(c echo.Context) error {
	var body struct {
		Title       string   `json:"title"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
		TechStack   []string `json:"tech_stack"`
		LiveURL     string   `json:"live_url"`
		GithubURL   string   `json:"github_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	if strings.TrimSpace(body.Title) == "" {
		missing = append(missing, "title")
	}
	slug := strings.TrimSpace(body.Slug)
	if slug == "" {
		slug = utils.Slugify(body.Title)
	}
	if !utils.IsValidSlug(slug) {
		missing = append(missing, "slug")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	p := repository.Portfolio{
		Title:       strings.TrimSpace(body.Title),
		Slug:        slug,
		Description: utils.SanitizeHTML(body.Description),
		ImageURL:    body.ImageURL,
		TechStack:   body.TechStack,
		LiveURL:     body.LiveURL,
		GithubURL:   body.GithubURL,
	}
	if err := h.Portfolios.Create(c.Request().Context(), &p); err != nil {
		if err == repository.ErrSlugTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create portfolio"})
	}
	h.notifyContentChanged(c, "portfolio", queue.ActionCreated, p.ID, p.Slug, p.Title, "")
	return c.JSON(http.StatusCreated, toPortfolioResp(p))
}

// ListPortfolios handles GET /v1/admin/portfolios.
func (h *AdminHandler) ListPortfolios(c echo.Context) error {
	limit, offset := parsePaging(c)
	items, err := h.Portfolios.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]portfolioResp, 0, len(items))
	for _, p := range items {
		out = append(out, toPortfolioResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPortfolio handles GET /v1/admin/portfolios/:id.
func (h *AdminHandler) GetPortfolio(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Portfolios.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrPortfolioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPortfolioResp(p))
}

// UpdatePortfolio handles PUT /v1/admin/portfolios/:id.
func (h *AdminHandler) UpdatePortfolio(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title       *string   `json:"title"`
		Slug        *string   `json:"slug"`
		Description *string   `json:"description"`
		ImageURL    *string   `json:"image_url"`
		TechStack   *[]string `json:"tech_stack"`
		LiveURL     *string   `json:"live_url"`
		GithubURL   *string   `json:"github_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	p, err := h.Portfolios.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrPortfolioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var bad []string
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			bad = append(bad, "title")
		} else {
			p.Title = strings.TrimSpace(*body.Title)
		}
	}
	if body.Slug != nil {
		if !utils.IsValidSlug(*body.Slug) {
			bad = append(bad, "slug")
		} else {
			p.Slug = *body.Slug
		}
	}
	if body.Description != nil {
		p.Description = utils.SanitizeHTML(*body.Description)
	}
	if body.ImageURL != nil {
		p.ImageURL = *body.ImageURL
	}
	if body.TechStack != nil {
		p.TechStack = *body.TechStack
	}
	if body.LiveURL != nil {
		p.LiveURL = *body.LiveURL
	}
	if body.GithubURL != nil {
		p.GithubURL = *body.GithubURL
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": bad})
	}

	if err := h.Portfolios.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrSlugTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update portfolio"})
	}
	h.notifyContentChanged(c, "portfolio", queue.ActionUpdated, p.ID, p.Slug, p.Title, "")
	return c.JSON(http.StatusOK, toPortfolioResp(p))
}

// DeletePortfolio handles DELETE /v1/admin/portfolios/:id.
func (h *AdminHandler) DeletePortfolio(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Portfolios.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrPortfolioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Portfolios.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrPortfolioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.notifyContentChanged(c, "portfolio", queue.ActionDeleted, p.ID, p.Slug, p.Title, "")
	return c.NoContent(http.StatusNoContent)
}
