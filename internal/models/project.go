// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentFormat distinguishes how a body field is stored and rendered.
type ContentFormat string

const (
	ContentFormatHTML     ContentFormat = "html"
	ContentFormatMarkdown ContentFormat = "markdown"
)

// GalleryURLs is an ordered list of image URLs persisted as a JSONB column.
// Legacy rows (imported from the previous site) sometimes hold a
// double-encoded value: a JSON string whose contents are themselves a JSON
// array. UnmarshalJSON and Scan normalize both shapes to the same slice,
// and normalization is idempotent.
type GalleryURLs []string

// UnmarshalJSON accepts either a JSON array of strings or a JSON-encoded
// string containing such an array.
func (g *GalleryURLs) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		*g = urls
		return nil
	}

	// Double-encoded legacy form: "[\"a.jpg\",\"b.jpg\"]".
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("gallery urls: unsupported shape: %w", err)
	}
	if raw == "" {
		*g = nil
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return fmt.Errorf("gallery urls: decode inner array: %w", err)
	}
	*g = urls
	return nil
}

// Scan implements sql.Scanner for the JSONB column.
func (g *GalleryURLs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = nil
		return nil
	case []byte:
		return g.UnmarshalJSON(v)
	case string:
		return g.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("gallery urls: cannot scan %T", src)
	}
}

// Value implements driver.Valuer. Always writes the canonical array form.
func (g GalleryURLs) Value() (driver.Value, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(g))
}

// Project is a portfolio entry: a built or planned work presented in the
// public galleries and managed through the admin panel.
type Project struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Content       string        `json:"content"`
	ContentFormat ContentFormat `json:"content_format"`
	FeaturedImage *string       `json:"featured_image,omitempty"`
	MainImageURL  *string       `json:"main_image_url,omitempty"`
	GalleryURLs   GalleryURLs   `json:"gallery_image_urls"`
	CategoryID    *uuid.UUID    `json:"category_id"`
	Published     bool          `json:"published"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// ContentHTML carries the rendered body on read endpoints when
	// ContentFormat is markdown. Not persisted.
	ContentHTML string `json:"content_html,omitempty"`
}

// ProjectImage is the row-per-image representation of a project gallery,
// queried independently of Project.GalleryURLs.
type ProjectImage struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
