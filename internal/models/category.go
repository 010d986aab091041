// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups projects for the portfolio galleries and the public
// navigation. Nesting is restricted to two levels: a category either is a
// root or has a root as its parent.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children     []Category `json:"children,omitempty"`
	Depth        int        `json:"depth"`
	ProjectCount int        `json:"project_count"`
}

// IsRoot reports whether the category has no parent. Only root categories
// may be offered as parents in the admin category form.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// TreeID implements tree.Noder.
func (c Category) TreeID() string { return c.ID.String() }

// TreeParentID implements tree.Noder.
func (c Category) TreeParentID() (string, bool) {
	if c.ParentID == nil {
		return "", false
	}
	return c.ParentID.String(), true
}
