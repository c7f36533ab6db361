package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project mirrors the 'projects' table. Every project belongs to a
// client; the reference is verified before any write.
type Project struct {
	ID          uint64
	ClientID    uint64
	Title       string
	Description sql.NullString
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrProjectNotFound indicates that a project was not located in the DB.
var ErrProjectNotFound = errors.New("project not found")

type ProjectRepo struct{ db *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

const projectCols = "id,client_id,title,description,status,start_date,end_date,created_at,updated_at"

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.ClientID, &p.Title, &p.Description, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// IsValidProjectStatus reports whether s is one of the known project states.
func IsValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Create inserts a new project after verifying the client reference.
func (r *ProjectRepo) Create(ctx context.Context, p *Project) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id=? LIMIT 1", p.ClientID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBadReference
	}
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (client_id, title, description, status, start_date, end_date) VALUES (?,?,?,?,?,?)",
		p.ClientID, p.Title, p.Description, p.Status, p.StartDate, p.EndDate)
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

// GetByID fetches a project by id.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectCols+" FROM projects WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Project{}, ErrProjectNotFound
	}
	return p, err
}

// Exists reports whether a project row with the given id is present.
func (r *ProjectRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns projects ordered by id, optionally filtered by client.
func (r *ProjectRepo) List(ctx context.Context, clientID uint64, limit, offset int) ([]Project, error) {
	q := "SELECT " + projectCols + " FROM projects"
	args := []any{}
	if clientID != 0 {
		q += " WHERE client_id=?"
		args = append(args, clientID)
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns of the row. The client
// reference is re-verified when it changes hands.
func (r *ProjectRepo) Update(ctx context.Context, p *Project) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id=? LIMIT 1", p.ClientID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBadReference
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE projects SET client_id=?, title=?, description=?, status=?, start_date=?, end_date=? WHERE id=?",
		p.ClientID, p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.ID)
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

// Delete removes a project. The delete is refused with ErrHasDependents
// while milestones or payments still reference the project; dependents
// must be removed first.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM milestones WHERE project_id=?) + (SELECT COUNT(*) FROM payments WHERE project_id=?)",
		id, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrHasDependents
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
