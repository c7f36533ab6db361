package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/conbyt/conbyt-cms/internal/utils"
)

// AdminUser mirrors the 'admin_users' table. Accounts are provisioned by
// the bootstrap CLI or by an admin through the CMS; there is no public
// sign-up path.
type AdminUser struct {
	ID           uint64
	Email        string
	Username     string
	PasswordHash string
	Role         string // "admin" | "editor"
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// ErrAdminNotFound indicates that an admin user was not located in the DB.
var ErrAdminNotFound = errors.New("admin user not found")

// Create hashes the password and inserts the admin user, returning its ID.
func (r *AdminRepo) Create(ctx context.Context, email, username, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_users (email, username, password_hash, role) VALUES (?,?,?,?)",
		email, username, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an active admin user by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,username,password_hash,role,is_active,created_at,updated_at FROM admin_users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return AdminUser{}, ErrAdminNotFound
	}
	return u, err
}

// GetByID fetches an admin user by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (AdminUser, error) {
	var u AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,username,password_hash,role,is_active,created_at,updated_at FROM admin_users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return AdminUser{}, ErrAdminNotFound
	}
	return u, err
}

// List returns all admin users ordered by id.
func (r *AdminRepo) List(ctx context.Context) ([]AdminUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,username,password_hash,role,is_active,created_at,updated_at FROM admin_users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AdminUser
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountActiveAdmins returns how many active accounts hold the admin role.
// Used to refuse deleting the last remaining admin.
func (r *AdminRepo) CountActiveAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM admin_users WHERE role='admin' AND is_active=1").Scan(&n)
	return n, err
}

// Delete removes an admin user by id.
func (r *AdminRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM admin_users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdminNotFound
	}
	return nil
}
