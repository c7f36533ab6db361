package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Portfolio mirrors the 'portfolios' table. A portfolio entry is a case
// study shown on the marketing site. TechStack keeps its order; it is
// stored as a JSON array in a single column.
type Portfolio struct {
	ID          uint64
	Title       string
	Slug        string
	Description string // sanitized HTML
	ImageURL    string
	TechStack   []string
	LiveURL     string
	GithubURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrPortfolioNotFound indicates that a portfolio was not located in the DB.
var ErrPortfolioNotFound = errors.New("portfolio not found")

type PortfolioRepo struct{ db *sql.DB }

func NewPortfolioRepo(db *sql.DB) *PortfolioRepo { return &PortfolioRepo{db: db} }

const portfolioCols = "id,title,slug,description,image_url,tech_stack,live_url,github_url,created_at,updated_at"

func scanPortfolio(row interface{ Scan(...any) error }) (Portfolio, error) {
	var p Portfolio
	var stack []byte
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL,
		&stack, &p.LiveURL, &p.GithubURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Portfolio{}, err
	}
	if len(stack) > 0 {
		if err := json.Unmarshal(stack, &p.TechStack); err != nil {
			return Portfolio{}, err
		}
	}
	return p, nil
}

func marshalStack(stack []string) ([]byte, error) {
	if stack == nil {
		stack = []string{}
	}
	return json.Marshal(stack)
}

// Create inserts a new portfolio entry. A duplicate slug surfaces as
// ErrSlugTaken and no row is written.
func (r *PortfolioRepo) Create(ctx context.Context, p *Portfolio) error {
	stack, err := marshalStack(p.TechStack)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO portfolios (title, slug, description, image_url, tech_stack, live_url, github_url)
		 VALUES (?,?,?,?,?,?,?)`,
		p.Title, p.Slug, p.Description, p.ImageURL, stack, p.LiveURL, p.GithubURL)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugTaken
		}
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

// GetByID fetches a portfolio by id.
func (r *PortfolioRepo) GetByID(ctx context.Context, id uint64) (Portfolio, error) {
	p, err := scanPortfolio(r.db.QueryRowContext(ctx,
		"SELECT "+portfolioCols+" FROM portfolios WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Portfolio{}, ErrPortfolioNotFound
	}
	return p, err
}

// GetBySlug fetches a portfolio by slug.
func (r *PortfolioRepo) GetBySlug(ctx context.Context, slug string) (Portfolio, error) {
	p, err := scanPortfolio(r.db.QueryRowContext(ctx,
		"SELECT "+portfolioCols+" FROM portfolios WHERE slug=? LIMIT 1", slug))
	if err == sql.ErrNoRows {
		return Portfolio{}, ErrPortfolioNotFound
	}
	return p, err
}

// List returns portfolios ordered newest first.
func (r *PortfolioRepo) List(ctx context.Context, limit, offset int) ([]Portfolio, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+portfolioCols+" FROM portfolios ORDER BY id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns of the row.
func (r *PortfolioRepo) Update(ctx context.Context, p *Portfolio) error {
	stack, err := marshalStack(p.TechStack)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE portfolios SET title=?, slug=?, description=?, image_url=?, tech_stack=?, live_url=?, github_url=?
		 WHERE id=?`,
		p.Title, p.Slug, p.Description, p.ImageURL, stack, p.LiveURL, p.GithubURL, p.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugTaken
		}
		return err
	}
	fresh, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

// Delete removes a portfolio by id.
func (r *PortfolioRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM portfolios WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}
