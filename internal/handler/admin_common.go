// Package handler defines HTTP handlers for the CMS and the public
// content API. Admin handlers assume SessionAuth has populated the
// request context; they never touch the database before that check.
package handler

import (
    "context"
    "errors"
    "log"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/conbyt/conbyt-cms/internal/queue"
    "github.com/conbyt/conbyt-cms/internal/repository"
    "github.com/conbyt/conbyt-cms/internal/service"
)

// AdminHandler bundles the repositories behind the authenticated CMS
// surface plus the publisher for content change events. Publisher may be
// nil when no broker is configured.
type AdminHandler struct {
    Blogs      *repository.BlogRepo
    Portfolios *repository.PortfolioRepo
    Clients    *repository.ClientRepo
    Projects   *repository.ProjectRepo
    Milestones *repository.MilestoneRepo
    Payments   *repository.PaymentRepo
    Contacts   *repository.ContactRepo
    Admins     *repository.AdminRepo
    Publisher  *service.ContentPublisher
    BcryptCost int
}

// NewAdminHandler constructs an AdminHandler and panics if any repository
// is nil. The publisher is optional.
func NewAdminHandler(blogs *repository.BlogRepo, portfolios *repository.PortfolioRepo,
    clients *repository.ClientRepo, projects *repository.ProjectRepo,
    milestones *repository.MilestoneRepo, payments *repository.PaymentRepo,
    contacts *repository.ContactRepo, admins *repository.AdminRepo,
    publisher *service.ContentPublisher, bcryptCost int) *AdminHandler {
    if blogs == nil || portfolios == nil || clients == nil || projects == nil ||
        milestones == nil || payments == nil || contacts == nil || admins == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        Blogs:      blogs,
        Portfolios: portfolios,
        Clients:    clients,
        Projects:   projects,
        Milestones: milestones,
        Payments:   payments,
        Contacts:   contacts,
        Admins:     admins,
        Publisher:  publisher,
        BcryptCost: bcryptCost,
    }
}

// getAdminID extracts the admin_id from echo.Context and converts it to uint64.
func getAdminID(c echo.Context) (uint64, error) {
    v := c.Get("admin_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid admin_id in context")
}

// currentEmail returns the authenticated admin's email claim, or "".
func currentEmail(c echo.Context) string {
    if v, ok := c.Get("email").(string); ok {
        return v
    }
    return ""
}

// parseIDParam converts the :id path parameter to uint64.
func parseIDParam(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parsePaging reads ?limit and ?offset with defaults and bounds.
func parsePaging(c echo.Context) (limit, offset int) {
    limit = 20
    if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
        limit = v
    }
    if limit > 100 {
        limit = 100
    }
    if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
        offset = v
    }
    return limit, offset
}

// parseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func parseDate(s string) (*time.Time, bool) {
    if s == "" {
        return nil, true
    }
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        return nil, false
    }
    return &t, true
}

// notifyContentChanged publishes a content.changed event for a blog or
// portfolio mutation. Publishing is best-effort: a broker failure never
// fails the request that already committed to the database.
func (h *AdminHandler) notifyContentChanged(c echo.Context, kind, action string, id uint64, slug, title, status string) {
    if h.Publisher == nil {
        return
    }
    ev := queue.ContentChangedEvent{
        Kind:      kind,
        Action:    action,
        ID:        id,
        Slug:      slug,
        Title:     title,
        Status:    status,
        ChangedBy: currentEmail(c),
        ChangedAt: time.Now().UTC().Format(time.RFC3339),
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := h.Publisher.Publish(ctx, ev); err != nil {
        log.Printf("content event publish failed (%s %s id=%d): %v", kind, action, id, err)
    }
}
