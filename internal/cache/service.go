// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"time"

	"atelier/internal/models"
)

// Service bundles the per-family fetch cache groups plus the optional L2
// response cache. It is created once in main and injected into the
// handlers, so there is no shared package-level state between tests or
// between server instances.
type Service struct {
	Categories *Group[[]models.Category]
	Projects   *Group[[]models.Project]
	Pages      *Group[[]models.Page]

	resp *ResponseCache // nil when Valkey is not configured
}

// NewService creates the three entity-family groups with the given TTL
// and wires their fallback chains. resp may be nil.
func NewService(ttl time.Duration, resp *ResponseCache) *Service {
	s := &Service{
		Categories: NewGroup[[]models.Category](ttl),
		Projects:   NewGroup[[]models.Project](ttl),
		Pages:      NewGroup[[]models.Page](ttl),
		resp:       resp,
	}
	s.Categories.Fallback = FallbackCategories
	s.Projects.Fallback = FallbackProjects
	s.Pages.Fallback = FallbackPages
	return s
}

// Keys for the collection endpoints served through the fetch cache.
const (
	KeyDirectCategories = "direct-categories"
	KeyDirectProjects   = "direct-projects"
	KeyDirectPages      = "direct-pages"
)

// ClearCategories drops cached category data in both layers. Called after
// every category mutation.
func (s *Service) ClearCategories(ctx context.Context) {
	s.Categories.Clear()
	if s.resp != nil {
		s.resp.Invalidate(ctx, KeyDirectCategories)
	}
}

// ClearProjects drops cached project data in both layers.
func (s *Service) ClearProjects(ctx context.Context) {
	s.Projects.Clear()
	if s.resp != nil {
		s.resp.Invalidate(ctx, KeyDirectProjects)
	}
}

// ClearPages drops cached page data in both layers.
func (s *Service) ClearPages(ctx context.Context) {
	s.Pages.Clear()
	if s.resp != nil {
		s.resp.Invalidate(ctx, KeyDirectPages)
	}
}

// Response exposes the L2 response cache, or nil when not configured.
func (s *Service) Response() *ResponseCache {
	return s.resp
}
