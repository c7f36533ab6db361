package handler

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conbyt/conbyt-cms/internal/repository"
)

// adminUserResp is the projection of an admin account. The password hash
// never leaves the repository layer.
type adminUserResp struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminUserResp(u repository.AdminUser) adminUserResp {
	return adminUserResp{
		ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role,
		IsActive: u.IsActive, CreatedAt: u.CreatedAt,
	}
}

// ListAdminUsers handles GET /v1/admin/users. The route group applies
// RequireRole("admin"); editors never reach this handler.
func (h *AdminHandler) ListAdminUsers(c echo.Context) error {
	items, err := h.Admins.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]adminUserResp, 0, len(items))
	for _, u := range items {
		out = append(out, toAdminUserResp(u))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAdminUser handles POST /v1/admin/users.
func (h *AdminHandler) CreateAdminUser(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var missing []string
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		missing = append(missing, "email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(body.Username) == "" {
		missing = append(missing, "username")
	}
	if len(body.Password) < 8 {
		missing = append(missing, "password")
	}
	role := strings.TrimSpace(body.Role)
	if role == "" {
		role = "editor"
	}
	if role != "admin" && role != "editor" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": missing})
	}

	id, err := h.Admins.Create(c.Request().Context(), email, strings.TrimSpace(body.Username), body.Password, role, h.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	u, err := h.Admins.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, toAdminUserResp(u))
}

// DeleteAdminUser handles DELETE /v1/admin/users/:id. Deleting yourself
// or the last active admin is refused.
func (h *AdminHandler) DeleteAdminUser(c echo.Context) error {
	selfID, err := getAdminID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if id == selfID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
	}
	target, err := h.Admins.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if target.Role == "admin" {
		n, err := h.Admins.CountActiveAdmins(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if n <= 1 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete the last admin"})
		}
	}
	if err := h.Admins.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrAdminNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
