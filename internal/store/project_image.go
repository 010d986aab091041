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

// ProjectImageStore manages the row-per-image gallery representation.
// The JSONB gallery on the project row stays the source the public list
// endpoints serve; these rows carry per-image alt text and ordering.
type ProjectImageStore struct {
	db *sql.DB
}

// NewProjectImageStore returns a new ProjectImageStore.
func NewProjectImageStore(db *sql.DB) *ProjectImageStore {
	return &ProjectImageStore{db: db}
}

// ListByProject returns a project's gallery rows in display order.
func (s *ProjectImageStore) ListByProject(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, url, alt, sort_order, created_at
		FROM project_images
		WHERE project_id = $1
		ORDER BY sort_order, created_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	var items []models.ProjectImage
	for rows.Next() {
		var img models.ProjectImage
		err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Alt, &img.SortOrder, &img.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan project image: %w", err)
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

// Replace swaps a project's gallery rows for the given set in one
// transaction, assigning sort_order from slice position.
func (s *ProjectImageStore) Replace(projectID uuid.UUID, images []models.ProjectImage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM project_images WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project images: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO project_images (project_id, url, alt, sort_order)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("prepare image insert: %w", err)
	}
	defer stmt.Close()

	for i, img := range images {
		if _, err := stmt.Exec(projectID, img.URL, img.Alt, i); err != nil {
			return fmt.Errorf("insert project image %d: %w", i, err)
		}
	}

	return tx.Commit()
}
