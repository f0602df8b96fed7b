package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/alignedempire/aligned/internal/content"
)

// ErrNotSeeded is returned by LoadCatalog when the database has no catalog.
var ErrNotSeeded = errors.New("catalog database has not been seeded")

// meta rows hold the singular parts of the catalog as YAML documents.
const (
	metaBrand    = "brand"
	metaFounder  = "founder"
	metaHero     = "hero"
	metaAbout    = "about"
	metaCoaching = "coaching"
	metaContact  = "contact"
)

// Seed replaces the stored catalog with c in a single transaction.
func (s *Store) Seed(ctx context.Context, c *content.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"posts", "courses", "testimonials", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, p := range c.Posts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO posts (id, position, category, title, summary, body, link, featured, read_time, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, p.Category, p.Title, p.Summary, p.Body, p.Link, p.Featured, p.ReadTime, p.Date)
		if err != nil {
			return fmt.Errorf("failed to insert post %d: %w", p.ID, err)
		}
	}

	for i, co := range c.Courses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO courses (id, position, title, tagline, modules, duration, price, href)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			co.ID, i, co.Title, co.Tagline, co.Modules, co.Duration, co.Price, co.Href)
		if err != nil {
			return fmt.Errorf("failed to insert course %d: %w", co.ID, err)
		}
	}

	for i, t := range c.Testimonials {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO testimonials (position, quote, name, title, result) VALUES (?, ?, ?, ?, ?)`,
			i, t.Quote, t.Name, t.Title, t.Result)
		if err != nil {
			return fmt.Errorf("failed to insert testimonial from %s: %w", t.Name, err)
		}
	}

	meta := map[string]any{
		metaBrand:    c.Brand,
		metaFounder:  c.Founder,
		metaHero:     c.Hero,
		metaAbout:    c.About,
		metaCoaching: c.Coaching,
		metaContact:  c.Contact,
	}
	for key, v := range meta {
		doc, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, string(doc)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads the stored catalog. The four tables are queried in
// parallel; rows keep the order they were seeded in.
func (s *Store) LoadCatalog(ctx context.Context) (*content.Catalog, error) {
	var (
		c     content.Catalog
		metas map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c.Posts, err = s.queryPosts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.Courses, err = s.queryCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.Testimonials, err = s.queryTestimonials(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		metas, err = s.queryMeta(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(metas) == 0 {
		return nil, ErrNotSeeded
	}

	targets := map[string]any{
		metaBrand:    &c.Brand,
		metaFounder:  &c.Founder,
		metaHero:     &c.Hero,
		metaAbout:    &c.About,
		metaCoaching: &c.Coaching,
		metaContact:  &c.Contact,
	}
	for key, dst := range targets {
		doc, ok := metas[key]
		if !ok {
			continue
		}
		if err := yaml.Unmarshal([]byte(doc), dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("stored catalog: %w", err)
	}
	return &c, nil
}

func (s *Store) queryPosts(ctx context.Context) ([]content.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, summary, body, link, featured, read_time, date
		 FROM posts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		var p content.Post
		if err := rows.Scan(&p.ID, &p.Category, &p.Title, &p.Summary, &p.Body,
			&p.Link, &p.Featured, &p.ReadTime, &p.Date); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

func (s *Store) queryCourses(ctx context.Context) ([]content.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, tagline, modules, duration, price, href FROM courses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []content.Course
	for rows.Next() {
		var co content.Course
		if err := rows.Scan(&co.ID, &co.Title, &co.Tagline, &co.Modules,
			&co.Duration, &co.Price, &co.Href); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

func (s *Store) queryTestimonials(ctx context.Context) ([]content.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quote, name, title, result FROM testimonials ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	var out []content.Testimonial
	for rows.Next() {
		var t content.Testimonial
		if err := rows.Scan(&t.Quote, &t.Name, &t.Title, &t.Result); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testimonials: %w", err)
	}
	return out, nil
}

func (s *Store) queryMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		if value.Valid {
			out[key] = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meta: %w", err)
	}
	return out, nil
}

// CountPosts returns the number of stored posts.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}
