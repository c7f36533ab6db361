package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ContactSubmission mirrors the 'contact_submissions' table. Rows are
// created only by the public contact form and are read-only afterwards;
// the CMS exposes them to editors but never modifies them. Reference is
// an opaque id returned to the submitter in the acknowledgement instead
// of echoing the submission back.
type ContactSubmission struct {
	ID          uint64
	Reference   string
	Name        string
	Email       string
	Phone       sql.NullString
	Subject     string
	Message     string
	SubmittedAt time.Time
}

// ErrSubmissionNotFound indicates that a submission was not located in the DB.
var ErrSubmissionNotFound = errors.New("contact submission not found")

type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = "id,reference,name,email,phone,subject,message,submitted_at"

func scanSubmission(row interface{ Scan(...any) error }) (ContactSubmission, error) {
	var s ContactSubmission
	err := row.Scan(&s.ID, &s.Reference, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message, &s.SubmittedAt)
	return s, err
}

// Create inserts a submission and assigns a fresh reference id.
func (r *ContactRepo) Create(ctx context.Context, s *ContactSubmission) error {
	s.Reference = uuid.NewString()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_submissions (reference, name, email, phone, subject, message) VALUES (?,?,?,?,?,?)",
		s.Reference, s.Name, s.Email, s.Phone, s.Subject, s.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a submission by id.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (ContactSubmission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx,
		"SELECT "+contactCols+" FROM contact_submissions WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return ContactSubmission{}, ErrSubmissionNotFound
	}
	return s, err
}

// List returns submissions newest first.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]ContactSubmission, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contactCols+" FROM contact_submissions ORDER BY id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ContactSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
