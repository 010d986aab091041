// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"

	"github.com/google/uuid"

	"atelier/internal/cache"
	"atelier/internal/slug"
	"atelier/internal/storage"
	"atelier/internal/store"
)

// Admin groups the authenticated mutation endpoints. Every mutation
// clears the affected entity family in the fetch cache before responding
// so the next public read sees fresh data.
type Admin struct {
	categories *store.CategoryStore
	projects   *store.ProjectStore
	images     *store.ProjectImageStore
	pages      *store.PageStore
	users      *store.UserStore
	cache      *cache.Service
	storage    *storage.Client // nil when S3 is not configured
}

// NewAdmin creates a new Admin handler group. storageClient may be nil.
func NewAdmin(categories *store.CategoryStore, projects *store.ProjectStore, images *store.ProjectImageStore, pages *store.PageStore, users *store.UserStore, cacheSvc *cache.Service, storageClient *storage.Client) *Admin {
	return &Admin{
		categories: categories,
		projects:   projects,
		images:     images,
		pages:      pages,
		users:      users,
		cache:      cacheSvc,
		storage:    storageClient,
	}
}

// resolveSlug settles the slug for a create or update. An explicit slug
// is normalized and must be free; an empty one is derived from the title
// and de-duplicated with numeric suffixes.
func resolveSlug(requested, title string, exists func(string, *uuid.UUID) (bool, error), exclude *uuid.UUID) (string, error) {
	if requested != "" {
		candidate := slug.Generate(requested)
		taken, err := exists(candidate, exclude)
		if err != nil {
			return "", err
		}
		if taken {
			return "", errSlugTaken
		}
		return candidate, nil
	}

	base := slug.Generate(title)
	candidate := base
	for n := 2; ; n++ {
		taken, err := exists(candidate, exclude)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, n)
	}
}

// errSlugTaken signals an explicit slug collision; handlers turn it into
// a 409 with an entity-specific message.
var errSlugTaken = fmt.Errorf("slug already in use")
