// Package repository contains data access logic for the content tables.
// This file defines the Blog model and repository. A Blog is the unit of
// the marketing site's blog section; only rows with status "published"
// are visible through the public API.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Blog statuses. New rows default to draft; only published rows are
// served to anonymous visitors.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// Blog mirrors the 'blogs' table. Content holds sanitized HTML.
type Blog struct {
	ID           uint64
	Title        string
	Slug         string
	Excerpt      string
	Content      string
	ImageURL     string
	AuthorName   string
	AuthorAvatar string
	Category     string
	ReadTime     string
	PublishedOn  *time.Time // nullable publication date shown on the site
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ErrBlogNotFound indicates that a blog was not located in the DB.
var ErrBlogNotFound = errors.New("blog not found")

type BlogRepo struct{ db *sql.DB }

func NewBlogRepo(db *sql.DB) *BlogRepo { return &BlogRepo{db: db} }

const blogCols = "id,title,slug,excerpt,content,image_url,author_name,author_avatar,category,read_time,published_on,status,created_at,updated_at"

func scanBlog(row interface{ Scan(...any) error }) (Blog, error) {
	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.ImageURL,
		&b.AuthorName, &b.AuthorAvatar, &b.Category, &b.ReadTime, &b.PublishedOn,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a new blog and assigns the generated ID back to the
// struct. A duplicate slug surfaces as ErrSlugTaken and no row is written.
func (r *BlogRepo) Create(ctx context.Context, b *Blog) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (title, slug, excerpt, content, image_url, author_name, author_avatar, category, read_time, published_on, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.Title, b.Slug, b.Excerpt, b.Content, b.ImageURL, b.AuthorName, b.AuthorAvatar,
		b.Category, b.ReadTime, b.PublishedOn, b.Status)
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
	b.ID = uint64(id)
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = fresh
	return nil
}

// GetByID fetches a blog regardless of status.
func (r *BlogRepo) GetByID(ctx context.Context, id uint64) (Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx,
		"SELECT "+blogCols+" FROM blogs WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return Blog{}, ErrBlogNotFound
	}
	return b, err
}

// GetBySlug fetches a blog by slug regardless of status. Used by the CMS.
func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx,
		"SELECT "+blogCols+" FROM blogs WHERE slug=? LIMIT 1", slug))
	if err == sql.ErrNoRows {
		return Blog{}, ErrBlogNotFound
	}
	return b, err
}

// GetPublishedBySlug fetches a blog by slug only when it is published.
// Unpublished rows are reported as not found so anonymous callers cannot
// probe for drafts.
func (r *BlogRepo) GetPublishedBySlug(ctx context.Context, slug string) (Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx,
		"SELECT "+blogCols+" FROM blogs WHERE slug=? AND status=? LIMIT 1", slug, BlogStatusPublished))
	if err == sql.ErrNoRows {
		return Blog{}, ErrBlogNotFound
	}
	return b, err
}

// List returns blogs ordered newest first, optionally filtered by status.
func (r *BlogRepo) List(ctx context.Context, status string, limit, offset int) ([]Blog, error) {
	q := "SELECT " + blogCols + " FROM blogs"
	args := []any{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update rewrites all caller-editable columns of the row. Applying the
// same values twice leaves the row in the same state. A slug collision
// with a different row surfaces as ErrSlugTaken.
func (r *BlogRepo) Update(ctx context.Context, b *Blog) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET title=?, slug=?, excerpt=?, content=?, image_url=?, author_name=?, author_avatar=?, category=?, read_time=?, published_on=?, status=?
		 WHERE id=?`,
		b.Title, b.Slug, b.Excerpt, b.Content, b.ImageURL, b.AuthorName, b.AuthorAvatar,
		b.Category, b.ReadTime, b.PublishedOn, b.Status, b.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugTaken
		}
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = fresh
	return nil
}

// Delete removes a blog by id.
func (r *BlogRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlogNotFound
	}
	return nil
}
