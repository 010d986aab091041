// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, slug, description, content, content_format,
	featured_image, main_image_url, gallery_image_urls, category_id,
	published, created_at, updated_at`

func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Content, &p.ContentFormat,
		&p.FeaturedImage, &p.MainImageURL, &p.GalleryURLs, &p.CategoryID,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, newest first. Used by the admin panel.
func (s *ProjectStore) List() ([]models.Project, error) {
	return s.list(`SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`)
}

// ListPublished returns only published projects, newest first. This is
// what the public endpoints and the fetch cache load.
func (s *ProjectStore) ListPublished() ([]models.Project, error) {
	return s.list(`SELECT ` + projectColumns + ` FROM projects WHERE published ORDER BY created_at DESC`)
}

// ListPublishedByCategory returns published projects in one category.
func (s *ProjectStore) ListPublishedByCategory(categoryID uuid.UUID) ([]models.Project, error) {
	return s.list(`SELECT `+projectColumns+` FROM projects WHERE published AND category_id = $1 ORDER BY created_at DESC`, categoryID)
}

func (s *ProjectStore) list(query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published project by slug. Used by the public
// project detail endpoint; drafts are invisible there.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = $1 AND published`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether another project already uses slug. exclude
// skips one ID, for updates.
func (s *ProjectStore) SlugExists(slug string, exclude *uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM projects WHERE slug = $1 AND ($2::uuid IS NULL OR id != $2)
		)`, slug, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("project slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new project and returns it with the generated ID.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (title, slug, description, content, content_format,
		                      featured_image, main_image_url, gallery_image_urls,
		                      category_id, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Description, p.Content, p.ContentFormat,
		p.FeaturedImage, p.MainImageURL, p.GalleryURLs, p.CategoryID, p.Published,
	)
	result, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, slug = $2, description = $3, content = $4,
			content_format = $5, featured_image = $6, main_image_url = $7,
			gallery_image_urls = $8, category_id = $9, published = $10,
			updated_at = NOW()
		WHERE id = $11
	`, p.Title, p.Slug, p.Description, p.Content, p.ContentFormat,
		p.FeaturedImage, p.MainImageURL, p.GalleryURLs, p.CategoryID,
		p.Published, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project. Its gallery rows go with it (ON DELETE CASCADE).
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Count returns the total number of projects.
func (s *ProjectStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
