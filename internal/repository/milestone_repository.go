package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Milestone statuses. pending and in_progress are working states;
// completed and cancelled are terminal.
const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusCancelled  = "cancelled"
)

// Milestone mirrors the 'milestones' table. OrderIndex controls the
// display order within a project; values need not be unique.
type Milestone struct {
	ID          uint64
	ProjectID   uint64
	Title       string
	Description sql.NullString
	Status      string
	DueDate     *time.Time
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrMilestoneNotFound indicates that a milestone was not located in the DB.
var ErrMilestoneNotFound = errors.New("milestone not found")

// IsValidMilestoneStatus reports whether s is one of the known states.
func IsValidMilestoneStatus(s string) bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted, MilestoneStatusCancelled:
		return true
	}
	return false
}

// ValidTransition reports whether a milestone may move from one status
// to another. Allowed moves: pending -> in_progress -> completed, and
// cancelled from either working state. Terminal states admit no exit.
// A no-op (from == to) is always allowed so that full-row updates that
// leave the status untouched pass through.
func ValidTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case MilestoneStatusPending:
		return to == MilestoneStatusInProgress || to == MilestoneStatusCancelled
	case MilestoneStatusInProgress:
		return to == MilestoneStatusCompleted || to == MilestoneStatusCancelled
	}
	return false
}

type MilestoneRepo struct{ db *sql.DB }

func NewMilestoneRepo(db *sql.DB) *MilestoneRepo { return &MilestoneRepo{db: db} }

const milestoneCols = "id,project_id,title,description,status,due_date,order_index,created_at,updated_at"

func scanMilestone(row interface{ Scan(...any) error }) (Milestone, error) {
	var m Milestone
	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Status,
		&m.DueDate, &m.OrderIndex, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create inserts a new milestone after verifying the project reference.
func (r *MilestoneRepo) Create(ctx context.Context, m *Milestone) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id=? LIMIT 1", m.ProjectID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBadReference
	}
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO milestones (project_id, title, description, status, due_date, order_index) VALUES (?,?,?,?,?,?)",
		m.ProjectID, m.Title, m.Description, m.Status, m.DueDate, m.OrderIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = fresh
	return nil
}

// GetByID fetches a milestone by id.
func (r *MilestoneRepo) GetByID(ctx context.Context, id uint64) (Milestone, error) {
	m, err := scanMilestone(r.db.QueryRowContext(ctx,
		"SELECT "+milestoneCols+" FROM milestones WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Milestone{}, ErrMilestoneNotFound
	}
	return m, err
}

// ListByProject returns the milestones of a project in display order:
// order_index ascending, ties broken by id ascending so the result is
// stable and deterministic.
func (r *MilestoneRepo) ListByProject(ctx context.Context, projectID uint64, limit, offset int) ([]Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+milestoneCols+" FROM milestones WHERE project_id=? ORDER BY order_index ASC, id ASC LIMIT ? OFFSET ?",
		projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns of the row. The status
// move is validated against the current row inside the same statement
// flow: callers load the row, apply the patch, and the repository
// rejects an illegal transition with ErrBadTransition before writing.
func (r *MilestoneRepo) Update(ctx context.Context, m *Milestone) error {
	cur, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if !ValidTransition(cur.Status, m.Status) {
		return ErrBadTransition
	}
	if m.ProjectID != cur.ProjectID {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id=? LIMIT 1", m.ProjectID).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrBadReference
		}
		if err != nil {
			return err
		}
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE milestones SET project_id=?, title=?, description=?, status=?, due_date=?, order_index=? WHERE id=?",
		m.ProjectID, m.Title, m.Description, m.Status, m.DueDate, m.OrderIndex, m.ID)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = fresh
	return nil
}

// Delete removes a milestone by id.
func (r *MilestoneRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM milestones WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMilestoneNotFound
	}
	return nil
}
