// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fallback.go supplies the last-resort data for the fetch cache: a
// snapshot of the public collections bundled into the binary, and a tiny
// hardcoded dataset used when even the snapshot cannot be decoded. Read
// endpoints therefore always resolve to a value.
package cache

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"sync"

	"atelier/internal/models"
)

//go:embed snapshot.json
var snapshotJSON []byte

// snapshot mirrors the shape of the public collection endpoints.
type snapshot struct {
	Categories []models.Category `json:"categories"`
	Projects   []models.Project  `json:"projects"`
	Pages      []models.Page     `json:"pages"`
}

var (
	snapOnce sync.Once
	snap     *snapshot
)

// loadSnapshot decodes the embedded snapshot once. A decode failure is
// logged and leaves snap nil, pushing callers to the hardcoded defaults.
func loadSnapshot() *snapshot {
	snapOnce.Do(func() {
		var s snapshot
		if err := json.Unmarshal(snapshotJSON, &s); err != nil {
			slog.Error("fallback snapshot decode failed", "error", err)
			return
		}
		snap = &s
	})
	return snap
}

// FallbackCategories returns the bundled category snapshot, or the
// hardcoded default set when the snapshot is unusable.
func FallbackCategories() []models.Category {
	if s := loadSnapshot(); s != nil && len(s.Categories) > 0 {
		return s.Categories
	}
	return defaultCategories()
}

// FallbackProjects returns the bundled project snapshot or the defaults.
func FallbackProjects() []models.Project {
	if s := loadSnapshot(); s != nil && len(s.Projects) > 0 {
		return s.Projects
	}
	return defaultProjects()
}

// FallbackPages returns the bundled page snapshot or the defaults.
func FallbackPages() []models.Page {
	if s := loadSnapshot(); s != nil && len(s.Pages) > 0 {
		return s.Pages
	}
	return defaultPages()
}

// defaultCategories is the minimal dataset that keeps the public
// navigation rendering when both the store and the snapshot are gone.
func defaultCategories() []models.Category {
	return []models.Category{
		{Name: "Residential", Slug: "residential"},
		{Name: "Commercial", Slug: "commercial"},
		{Name: "Interior", Slug: "interior"},
	}
}

func defaultProjects() []models.Project {
	return []models.Project{
		{
			Title:         "Selected Works",
			Slug:          "selected-works",
			Description:   "Our portfolio is temporarily unavailable. Please check back shortly.",
			ContentFormat: models.ContentFormatHTML,
			Published:     true,
		},
	}
}

func defaultPages() []models.Page {
	return []models.Page{
		{
			Title:         "Studio",
			Slug:          "studio",
			Content:       "<p>Our studio pages are temporarily unavailable.</p>",
			ContentFormat: models.ContentFormatHTML,
			PageType:      models.PageTypeStandard,
			Published:     true,
		},
	}
}
