package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Client mirrors the 'clients' table. Clients are internal CRM records
// owned by the CMS; they are never exposed through the public API.
type Client struct {
	ID        uint64
	Name      string
	Email     string
	Phone     string
	Company   string
	Notes     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrClientNotFound indicates that a client was not located in the DB.
var ErrClientNotFound = errors.New("client not found")

type ClientRepo struct{ db *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = "id,name,email,phone,company,notes,created_at,updated_at"

func scanClient(row interface{ Scan(...any) error }) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a new client and assigns the generated ID.
func (r *ClientRepo) Create(ctx context.Context, c *Client) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (name, email, phone, company, notes) VALUES (?,?,?,?,?)",
		c.Name, c.Email, c.Phone, c.Company, c.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = fresh
	return nil
}

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientCols+" FROM clients WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Client{}, ErrClientNotFound
	}
	return c, err
}

// Exists reports whether a client row with the given id is present.
// Used to verify references before writing projects and payments.
func (r *ClientRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns clients ordered by id.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]Client, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clientCols+" FROM clients ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns of the row.
func (r *ClientRepo) Update(ctx context.Context, c *Client) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE clients SET name=?, email=?, phone=?, company=?, notes=? WHERE id=?",
		c.Name, c.Email, c.Phone, c.Company, c.Notes, c.ID)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = fresh
	return nil
}

// Delete removes a client. The delete is refused with ErrHasDependents
// while any project still references the client.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE client_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrHasDependents
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}
