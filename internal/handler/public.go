// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public content API for the marketing
// site. These routes require no authentication and never reveal drafts,
// internal fields or repository error detail: everything collapses to a
// 404 or a generic failure.
package handler

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// PublicHandler aggregates repositories needed for the anonymous surface.
type PublicHandler struct {
	Blogs      *repository.BlogRepo
	Portfolios *repository.PortfolioRepo
	Contacts   *repository.ContactRepo
}

func NewPublicHandler(blogs *repository.BlogRepo, portfolios *repository.PortfolioRepo, contacts *repository.ContactRepo) *PublicHandler {
	if blogs == nil || portfolios == nil || contacts == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Blogs: blogs, Portfolios: portfolios, Contacts: contacts}
}

// PublicBlog is a published blog as seen by anonymous visitors. Status
// and timestamps other than the publication date are not exposed.
type PublicBlog struct {
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Excerpt      string  `json:"excerpt"`
	Content      string  `json:"content,omitempty"`
	ImageURL     string  `json:"image_url"`
	AuthorName   string  `json:"author_name"`
	AuthorAvatar string  `json:"author_avatar"`
	Category     string  `json:"category"`
	ReadTime     string  `json:"read_time"`
	PublishedOn  *string `json:"published_on"`
}

func toPublicBlog(b repository.Blog, withContent bool) PublicBlog {
	var pub *string
	if b.PublishedOn != nil {
		s := b.PublishedOn.Format("2006-01-02")
		pub = &s
	}
	out := PublicBlog{
		Title: b.Title, Slug: b.Slug, Excerpt: b.Excerpt,
		ImageURL: b.ImageURL, AuthorName: b.AuthorName, AuthorAvatar: b.AuthorAvatar,
		Category: b.Category, ReadTime: b.ReadTime, PublishedOn: pub,
	}
	if withContent {
		out.Content = b.Content
	}
	return out
}

// PublicCaseStudy is a portfolio entry as seen by anonymous visitors.
type PublicCaseStudy struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url"`
	TechStack   []string `json:"tech_stack"`
	LiveURL     string   `json:"live_url"`
	GithubURL   string   `json:"github_url"`
}

func toPublicCaseStudy(p repository.Portfolio, withDescription bool) PublicCaseStudy {
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	out := PublicCaseStudy{
		Title: p.Title, Slug: p.Slug, ImageURL: p.ImageURL,
		TechStack: stack, LiveURL: p.LiveURL, GithubURL: p.GithubURL,
	}
	if withDescription {
		out.Description = p.Description
	}
	return out
}

// ListPublishedBlogs handles GET /v1/blogs. Only published rows are
// returned, without their full content.
func (h *PublicHandler) ListPublishedBlogs(c echo.Context) error {
	limit, offset := parsePaging(c)
	blogs, err := h.Blogs.List(c.Request().Context(), repository.BlogStatusPublished, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blogs"})
	}
	out := make([]PublicBlog, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toPublicBlog(b, false))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBlogBySlug handles GET /v1/blogs/:slug. An unpublished row is
// indistinguishable from a missing one.
func (h *PublicHandler) GetBlogBySlug(c echo.Context) error {
	slug := c.Param("slug")
	b, err := h.Blogs.GetPublishedBySlug(c.Request().Context(), slug)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blog"})
	}
	return c.JSON(http.StatusOK, toPublicBlog(b, true))
}

// ListCaseStudies handles GET /v1/case-studies.
func (h *PublicHandler) ListCaseStudies(c echo.Context) error {
	limit, offset := parsePaging(c)
	items, err := h.Portfolios.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load case studies"})
	}
	out := make([]PublicCaseStudy, 0, len(items))
	for _, p := range items {
		out = append(out, toPublicCaseStudy(p, false))
	}
	return c.JSON(http.StatusOK, out)
}

// GetCaseStudyBySlug handles GET /v1/case-studies/:slug.
func (h *PublicHandler) GetCaseStudyBySlug(c echo.Context) error {
	slug := c.Param("slug")
	p, err := h.Portfolios.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		if err == repository.ErrPortfolioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load case study"})
	}
	return c.JSON(http.StatusOK, toPublicCaseStudy(p, true))
}

// SubmitContact handles POST /v1/contact. The acknowledgement carries an
// opaque reference id; nothing the caller sent is echoed back.
func (h *PublicHandler) SubmitContact(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	if strings.TrimSpace(body.Name) == "" {
		missing = append(missing, "name")
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		missing = append(missing, "email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(body.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(body.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	var phone *string
	if p := strings.TrimSpace(body.Phone); p != "" {
		phone = &p
	}
	s := repository.ContactSubmission{
		Name:    strings.TrimSpace(body.Name),
		Email:   email,
		Phone:   nullString(phone),
		Subject: strings.TrimSpace(body.Subject),
		Message: strings.TrimSpace(body.Message),
	}
	if err := h.Contacts.Create(c.Request().Context(), &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to submit"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reference":    s.Reference,
		"message":      "thanks, we will get back to you",
		"submitted_at": time.Now().UTC().Format(time.RFC3339),
	})
}
