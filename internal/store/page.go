// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/models"
	"atelier/internal/tree"
)

// PageStore handles all page-related database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, title, slug, description, content, content_format,
	featured_image, meta_title, meta_description, parent_id, page_type,
	published, sort_order, created_at, updated_at`

func scanPage(scanner interface{ Scan(...any) error }) (*models.Page, error) {
	var p models.Page
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Content, &p.ContentFormat,
		&p.FeaturedImage, &p.MetaTitle, &p.MetaDescription, &p.ParentID,
		&p.PageType, &p.Published, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all pages ordered for display. Used by the admin panel.
func (s *PageStore) List() ([]models.Page, error) {
	return s.list(`SELECT ` + pageColumns + ` FROM pages ORDER BY sort_order, title`)
}

// ListPublished returns only published pages in display order.
func (s *PageStore) ListPublished() ([]models.Page, error) {
	return s.list(`SELECT ` + pageColumns + ` FROM pages WHERE published ORDER BY sort_order, title`)
}

func (s *PageStore) list(query string, args ...any) ([]models.Page, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Tree returns published pages nested under their parents for the public
// navigation.
func (s *PageStore) Tree() ([]models.Page, error) {
	flat, err := s.ListPublished()
	if err != nil {
		return nil, err
	}
	return nestPages(tree.Build(flat)), nil
}

func nestPages(nodes []*tree.Node[models.Page]) []models.Page {
	var result []models.Page
	for _, n := range nodes {
		p := n.Item
		p.Children = nestPages(n.Children)
		result = append(result, p)
	}
	return result
}

// FindByID retrieves a page by its UUID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published page by slug. Returns nil if not found.
func (s *PageStore) FindBySlug(slug string) (*models.Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE slug = $1 AND published`, slug)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether another page already uses slug. exclude
// skips one ID, for updates.
func (s *PageStore) SlugExists(slug string, exclude *uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pages WHERE slug = $1 AND ($2::uuid IS NULL OR id != $2)
		)`, slug, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("page slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new page and returns it with the generated ID.
func (s *PageStore) Create(p *models.Page) (*models.Page, error) {
	row := s.db.QueryRow(`
		INSERT INTO pages (title, slug, description, content, content_format,
		                   featured_image, meta_title, meta_description,
		                   parent_id, page_type, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+pageColumns,
		p.Title, p.Slug, p.Description, p.Content, p.ContentFormat,
		p.FeaturedImage, p.MetaTitle, p.MetaDescription,
		p.ParentID, p.PageType, p.Published, p.SortOrder,
	)
	result, err := scanPage(row)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return result, nil
}

// Update modifies an existing page.
func (s *PageStore) Update(p *models.Page) error {
	_, err := s.db.Exec(`
		UPDATE pages SET
			title = $1, slug = $2, description = $3, content = $4,
			content_format = $5, featured_image = $6, meta_title = $7,
			meta_description = $8, parent_id = $9, page_type = $10,
			published = $11, sort_order = $12, updated_at = NOW()
		WHERE id = $13
	`, p.Title, p.Slug, p.Description, p.Content, p.ContentFormat,
		p.FeaturedImage, p.MetaTitle, p.MetaDescription, p.ParentID,
		p.PageType, p.Published, p.SortOrder, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

// Delete removes a page. Children are re-parented to root
// (ON DELETE SET NULL).
func (s *PageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}
