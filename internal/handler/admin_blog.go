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

// blogResp is the CMS-facing projection of a blog row.
type blogResp struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	ImageURL     string     `json:"image_url"`
	AuthorName   string     `json:"author_name"`
	AuthorAvatar string     `json:"author_avatar"`
	Category     string     `json:"category"`
	ReadTime     string     `json:"read_time"`
	PublishedOn  *string    `json:"published_on"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toBlogResp(b repository.Blog) blogResp {
	var pub *string
	if b.PublishedOn != nil {
		s := b.PublishedOn.Format("2006-01-02")
		pub = &s
	}
	return blogResp{
		ID: b.ID, Title: b.Title, Slug: b.Slug, Excerpt: b.Excerpt, Content: b.Content,
		ImageURL: b.ImageURL, AuthorName: b.AuthorName, AuthorAvatar: b.AuthorAvatar,
		Category: b.Category, ReadTime: b.ReadTime, PublishedOn: pub, Status: b.Status,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

// CreateBlog handles POST /v1/admin/blogs. The slug is derived from the
// title when omitted; rich-text content is sanitized before it is stored.
func (h *AdminHandler) CreateBlog(c echo.Context) error {
	var body struct {
		Title        string `json:"title"`
		Slug         string `json:"slug"`
		Excerpt      string `json:"excerpt"`
		Content      string `json:"content"`
		ImageURL     string `json:"image_url"`
		AuthorName   string `json:"author_name"`
		AuthorAvatar string `json:"author_avatar"`
		Category     string `json:"category"`
		ReadTime     string `json:"read_time"`
		PublishedOn  string `json:"published_on"`
		Status       string `json:"status"`
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
	status := strings.TrimSpace(body.Status)
	if status == "" {
		status = repository.BlogStatusDraft
	}
	if status != repository.BlogStatusDraft && status != repository.BlogStatusPublished {
		missing = append(missing, "status")
	}
	pub, ok := parseDate(body.PublishedOn)
	if !ok {
		missing = append(missing, "published_on")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	b := repository.Blog{
		Title:        strings.TrimSpace(body.Title),
		Slug:         slug,
		Excerpt:      body.Excerpt,
		Content:      utils.SanitizeHTML(body.Content),
		ImageURL:     body.ImageURL,
		AuthorName:   body.AuthorName,
		AuthorAvatar: body.AuthorAvatar,
		Category:     body.Category,
		ReadTime:     body.ReadTime,
		PublishedOn:  pub,
		Status:       status,
	}
	if err := h.Blogs.Create(c.Request().Context(), &b); err != nil {
		if err == repository.ErrSlugTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create blog"})
	}
	h.notifyContentChanged(c, "blog", queue.ActionCreated, b.ID, b.Slug, b.Title, b.Status)
	return c.JSON(http.StatusCreated, toBlogResp(b))
}

// ListBlogs handles GET /v1/admin/blogs with optional ?status filter.
func (h *AdminHandler) ListBlogs(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && status != repository.BlogStatusDraft && status != repository.BlogStatusPublished {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	limit, offset := parsePaging(c)
	blogs, err := h.Blogs.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]blogResp, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBlog handles GET /v1/admin/blogs/:id.
func (h *AdminHandler) GetBlog(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Blogs.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBlogResp(b))
}

// UpdateBlog handles PUT /v1/admin/blogs/:id. Only fields present in the
// body are changed; applying the same patch twice leaves the row as-is.
func (h *AdminHandler) UpdateBlog(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title        *string `json:"title"`
		Slug         *string `json:"slug"`
		Excerpt      *string `json:"excerpt"`
		Content      *string `json:"content"`
		ImageURL     *string `json:"image_url"`
		AuthorName   *string `json:"author_name"`
		AuthorAvatar *string `json:"author_avatar"`
		Category     *string `json:"category"`
		ReadTime     *string `json:"read_time"`
		PublishedOn  *string `json:"published_on"`
		Status       *string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	b, err := h.Blogs.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var bad []string
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			bad = append(bad, "title")
		} else {
			b.Title = strings.TrimSpace(*body.Title)
		}
	}
	if body.Slug != nil {
		if !utils.IsValidSlug(*body.Slug) {
			bad = append(bad, "slug")
		} else {
			b.Slug = *body.Slug
		}
	}
	if body.Excerpt != nil {
		b.Excerpt = *body.Excerpt
	}
	if body.Content != nil {
		b.Content = utils.SanitizeHTML(*body.Content)
	}
	if body.ImageURL != nil {
		b.ImageURL = *body.ImageURL
	}
	if body.AuthorName != nil {
		b.AuthorName = *body.AuthorName
	}
	if body.AuthorAvatar != nil {
		b.AuthorAvatar = *body.AuthorAvatar
	}
	if body.Category != nil {
		b.Category = *body.Category
	}
	if body.ReadTime != nil {
		b.ReadTime = *body.ReadTime
	}
	if body.PublishedOn != nil {
		pub, ok := parseDate(*body.PublishedOn)
		if !ok {
			bad = append(bad, "published_on")
		} else {
			b.PublishedOn = pub
		}
	}
	if body.Status != nil {
		if *body.Status != repository.BlogStatusDraft && *body.Status != repository.BlogStatusPublished {
			bad = append(bad, "status")
		} else {
			b.Status = *body.Status
		}
	}
	if len(bad) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": bad})
	}

	if err := h.Blogs.Update(c.Request().Context(), &b); err != nil {
		if err == repository.ErrSlugTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update blog"})
	}
	h.notifyContentChanged(c, "blog", queue.ActionUpdated, b.ID, b.Slug, b.Title, b.Status)
	return c.JSON(http.StatusOK, toBlogResp(b))
}

// DeleteBlog handles DELETE /v1/admin/blogs/:id.
func (h *AdminHandler) DeleteBlog(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Blogs.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBlogNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Blogs.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrBlogNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.notifyContentChanged(c, "blog", queue.ActionDeleted, b.ID, b.Slug, b.Title, b.Status)
	return c.NoContent(http.StatusNoContent)
}
