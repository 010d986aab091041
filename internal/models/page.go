// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PageType classifies standalone pages for the public site navigation.
type PageType string

const (
	PageTypeStandard PageType = "standard"
	PageTypeProcess  PageType = "process" // design-process pages
	PageTypeLanding  PageType = "landing"
)

// Page is a standalone content page (about, design process, contact).
// Every field the admin form exposes is persisted, including the SEO
// metadata and the parent pointer used for nested navigation.
type Page struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Description     *string       `json:"description,omitempty"`
	Content         string        `json:"content"`
	ContentFormat   ContentFormat `json:"content_format"`
	FeaturedImage   *string       `json:"featured_image,omitempty"`
	MetaTitle       *string       `json:"meta_title,omitempty"`
	MetaDescription *string       `json:"meta_description,omitempty"`
	ParentID        *uuid.UUID    `json:"parent_id"`
	PageType        PageType      `json:"page_type"`
	Published       bool          `json:"published"`
	SortOrder       int           `json:"sort_order"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Virtual fields populated by store methods or read handlers.
	Children    []Page `json:"children,omitempty"`
	ContentHTML string `json:"content_html,omitempty"`
}

// TreeID implements tree.Noder.
func (p Page) TreeID() string { return p.ID.String() }

// TreeParentID implements tree.Noder.
func (p Page) TreeParentID() (string, bool) {
	if p.ParentID == nil {
		return "", false
	}
	return p.ParentID.String(), true
}
