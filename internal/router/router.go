// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/handler"
	"github.com/conbyt/conbyt-cms/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the login endpoint and the authenticated /v1/admin/me
// route. Login sits outside the session guard; an optional limiter can be
// applied to slow down credential guessing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokenSecret string, loginLimiter echo.MiddlewareFunc) {
	login := e.Group("/v1/auth")
	if loginLimiter != nil {
		login.Use(loginLimiter)
	}
	login.POST("/login", a.Login)

	me := e.Group("/v1/admin")
	me.Use(middleware.SessionAuth(tokenSecret))
	me.Use(middleware.RequireRole("admin", "editor"))
	me.GET("/me", a.Me)
}

// RegisterAdmin registers the CMS surface under /v1/admin. Every route
// requires a valid session token; content routes accept both roles while
// the /users subgroup is restricted to admins.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, tokenSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.SessionAuth(tokenSecret))
	g.Use(middleware.RequireRole("admin", "editor"))

	g.POST("/blogs", h.CreateBlog)
	g.GET("/blogs", h.ListBlogs)
	g.GET("/blogs/:id", h.GetBlog)
	g.PUT("/blogs/:id", h.UpdateBlog)
	g.DELETE("/blogs/:id", h.DeleteBlog)

	g.POST("/portfolios", h.CreatePortfolio)
	g.GET("/portfolios", h.ListPortfolios)
	g.GET("/portfolios/:id", h.GetPortfolio)
	g.PUT("/portfolios/:id", h.UpdatePortfolio)
	g.DELETE("/portfolios/:id", h.DeletePortfolio)

	g.POST("/clients", h.CreateClient)
	g.GET("/clients", h.ListClients)
	g.GET("/clients/:id", h.GetClient)
	g.PUT("/clients/:id", h.UpdateClient)
	g.DELETE("/clients/:id", h.DeleteClient)

	g.POST("/projects", h.CreateProject)
	g.GET("/projects", h.ListProjects)
	g.GET("/projects/:id", h.GetProject)
	g.PUT("/projects/:id", h.UpdateProject)
	g.DELETE("/projects/:id", h.DeleteProject)

	g.POST("/milestones", h.CreateMilestone)
	g.GET("/milestones", h.ListMilestones)
	g.GET("/milestones/:id", h.GetMilestone)
	g.PUT("/milestones/:id", h.UpdateMilestone)
	g.DELETE("/milestones/:id", h.DeleteMilestone)

	g.POST("/payments", h.CreatePayment)
	g.GET("/payments", h.ListPayments)
	g.GET("/payments/:id", h.GetPayment)
	g.PUT("/payments/:id", h.UpdatePayment)
	g.DELETE("/payments/:id", h.DeletePayment)

	// Submissions arrive through the public contact form; the CMS can only
	// read them.
	g.GET("/contact-submissions", h.ListContactSubmissions)
	g.GET("/contact-submissions/:id", h.GetContactSubmission)

	users := g.Group("/users")
	users.Use(middleware.RequireRole("admin"))
	users.GET("", h.ListAdminUsers)
	users.POST("", h.CreateAdminUser)
	users.DELETE("/:id", h.DeleteAdminUser)
}

// RegisterPublic registers the anonymous marketing-site endpoints. Read
// endpoints can be fronted by a response cache; the contact form can be
// rate limited. Either middleware may be nil.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache, contactLimiter echo.MiddlewareFunc) {
	read := e.Group("/v1")
	if cache != nil {
		read.Use(cache)
	}
	read.GET("/blogs", p.ListPublishedBlogs)
	read.GET("/blogs/:slug", p.GetBlogBySlug)
	read.GET("/case-studies", p.ListCaseStudies)
	read.GET("/case-studies/:slug", p.GetCaseStudyBySlug)

	contact := e.Group("/v1")
	if contactLimiter != nil {
		contact.Use(contactLimiter)
	}
	contact.POST("/contact", p.SubmitContact)
}
