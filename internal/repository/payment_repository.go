package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusOverdue  = "overdue"
	PaymentStatusRefunded = "refunded"
)

// Payment mirrors the 'payments' table. A payment is attached to a
// project, a client, or both; at least one reference must be set and
// every set reference is verified before the write.
type Payment struct {
	ID          uint64
	ProjectID   *uint64
	ClientID    *uint64
	AmountCents int64
	Currency    string
	Status      string
	PaidOn      *time.Time
	Notes       sql.NullString
	CreatedAt   time.Time
}

// ErrPaymentNotFound indicates that a payment was not located in the DB.
var ErrPaymentNotFound = errors.New("payment not found")

// IsValidPaymentStatus reports whether s is one of the known states.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = "id,project_id,client_id,amount_cents,currency,status,paid_on,notes,created_at"

func scanPayment(row interface{ Scan(...any) error }) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.ProjectID, &p.ClientID, &p.AmountCents, &p.Currency,
		&p.Status, &p.PaidOn, &p.Notes, &p.CreatedAt)
	return p, err
}

// checkRefs verifies that every set reference points at an existing row.
func (r *PaymentRepo) checkRefs(ctx context.Context, projectID, clientID *uint64) error {
	if projectID != nil {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id=? LIMIT 1", *projectID).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrBadReference
		}
		if err != nil {
			return err
		}
	}
	if clientID != nil {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id=? LIMIT 1", *clientID).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrBadReference
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new payment after verifying its references.
func (r *PaymentRepo) Create(ctx context.Context, p *Payment) error {
	if err := r.checkRefs(ctx, p.ProjectID, p.ClientID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO payments (project_id, client_id, amount_cents, currency, status, paid_on, notes) VALUES (?,?,?,?,?,?,?)",
		p.ProjectID, p.ClientID, p.AmountCents, p.Currency, p.Status, p.PaidOn, p.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	fresh, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		"SELECT "+paymentCols+" FROM payments WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Payment{}, ErrPaymentNotFound
	}
	return p, err
}

// List returns payments newest first, optionally filtered by project or
// client.
func (r *PaymentRepo) List(ctx context.Context, projectID, clientID uint64, limit, offset int) ([]Payment, error) {
	q := "SELECT " + paymentCols + " FROM payments"
	args := []any{}
	switch {
	case projectID != 0:
		q += " WHERE project_id=?"
		args = append(args, projectID)
	case clientID != 0:
		q += " WHERE client_id=?"
		args = append(args, clientID)
	}
	q += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns after re-verifying refs.
func (r *PaymentRepo) Update(ctx context.Context, p *Payment) error {
	if err := r.checkRefs(ctx, p.ProjectID, p.ClientID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE payments SET project_id=?, client_id=?, amount_cents=?, currency=?, status=?, paid_on=?, notes=? WHERE id=?",
		p.ProjectID, p.ClientID, p.AmountCents, p.Currency, p.Status, p.PaidOn, p.Notes, p.ID)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

// Delete removes a payment by id.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM payments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
