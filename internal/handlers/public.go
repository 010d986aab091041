// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/store"
)

// Public groups the unauthenticated read endpoints. The direct-*
// collection endpoints go through the fetch cache: L2 Valkey first, then
// the L1 in-process groups, then the store; store failures degrade to the
// snapshot/default fallback chain instead of erroring.
type Public struct {
	categories *store.CategoryStore
	projects   *store.ProjectStore
	images     *store.ProjectImageStore
	pages      *store.PageStore
	cache      *cache.Service
}

// NewPublic creates a new Public handler group.
func NewPublic(categories *store.CategoryStore, projects *store.ProjectStore, images *store.ProjectImageStore, pages *store.PageStore, cacheSvc *cache.Service) *Public {
	return &Public{
		categories: categories,
		projects:   projects,
		images:     images,
		pages:      pages,
		cache:      cacheSvc,
	}
}

// Health answers liveness probes.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DirectCategories serves the category collection through the cache
// chain. The response is always 200: on store failure the fallback data
// is served instead.
func (p *Public) DirectCategories(w http.ResponseWriter, r *http.Request) {
	serveDirect(w, r, p.cache, cache.KeyDirectCategories, p.cache.Categories,
		func(ctx context.Context) ([]models.Category, error) {
			return p.categories.List()
		})
}

// DirectProjects serves the published project collection through the
// cache chain.
func (p *Public) DirectProjects(w http.ResponseWriter, r *http.Request) {
	serveDirect(w, r, p.cache, cache.KeyDirectProjects, p.cache.Projects,
		func(ctx context.Context) ([]models.Project, error) {
			return p.projects.ListPublished()
		})
}

// DirectPages serves the published page collection through the cache
// chain.
func (p *Public) DirectPages(w http.ResponseWriter, r *http.Request) {
	serveDirect(w, r, p.cache, cache.KeyDirectPages, p.cache.Pages,
		func(ctx context.Context) ([]models.Page, error) {
			return p.pages.ListPublished()
		})
}

// serveDirect runs the two-layer read path for one entity family. Only
// fresh loads (not fallbacks) are written back to the L2 cache, so a
// degraded response never outlives the outage that caused it.
func serveDirect[T any](w http.ResponseWriter, r *http.Request, svc *cache.Service, key string, group *cache.Group[T], load cache.Loader[T]) {
	ctx := r.Context()

	if resp := svc.Response(); resp != nil {
		if body, ok := resp.Get(ctx, key); ok {
			writeRaw(w, body)
			return
		}
	}

	data, fresh := group.Fetch(ctx, key, load)

	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("marshal direct response failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if fresh {
		if resp := svc.Response(); resp != nil {
			resp.Set(ctx, key, body)
		}
	}
	writeRaw(w, body)
}

// ListCategories returns all categories with project counts.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := p.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, items)
}

// CategoryTree returns categories nested under their parents.
func (p *Public) CategoryTree(w http.ResponseWriter, r *http.Request) {
	nested, err := p.categories.Tree()
	if err != nil {
		slog.Error("category tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if nested == nil {
		nested = []models.Category{}
	}
	writeJSON(w, http.StatusOK, nested)
}

// GetCategory returns a single category by ID.
func (p *Public) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := p.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Category not found.")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListProjects returns projects, all of them by default and only
// published ones with ?published=true.
func (p *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.Project
		err   error
	)
	if r.URL.Query().Get("published") == "true" {
		items, err = p.projects.ListPublished()
	} else {
		items, err = p.projects.List()
	}
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetProject returns a single project by ID with rendered content.
func (p *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	proj, err := p.projects.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if proj == nil {
		writeError(w, http.StatusNotFound, "Project not found.")
		return
	}
	renderProject(proj)
	writeJSON(w, http.StatusOK, proj)
}

// GetProjectBySlug returns a published project by slug with rendered
// content. Drafts are invisible here.
func (p *Public) GetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	proj, err := p.projects.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find project by slug failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if proj == nil {
		writeError(w, http.StatusNotFound, "Project not found.")
		return
	}
	renderProject(proj)
	writeJSON(w, http.StatusOK, proj)
}

// ListProjectImages returns a project's gallery rows in display order.
func (p *Public) ListProjectImages(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	items, err := p.images.ListByProject(id)
	if err != nil {
		slog.Error("list project images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.ProjectImage{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ListPages returns all pages in display order.
func (p *Public) ListPages(w http.ResponseWriter, r *http.Request) {
	items, err := p.pages.List()
	if err != nil {
		slog.Error("list pages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.Page{}
	}
	writeJSON(w, http.StatusOK, items)
}

// PageTree returns published pages nested for the site navigation.
func (p *Public) PageTree(w http.ResponseWriter, r *http.Request) {
	nested, err := p.pages.Tree()
	if err != nil {
		slog.Error("page tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if nested == nil {
		nested = []models.Page{}
	}
	writeJSON(w, http.StatusOK, nested)
}

// GetPage returns a single page by ID with rendered content.
func (p *Public) GetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	page, err := p.pages.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "Page not found.")
		return
	}
	renderPage(page)
	writeJSON(w, http.StatusOK, page)
}

// GetPageBySlug returns a published page by slug with rendered content.
func (p *Public) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	page, err := p.pages.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find page by slug failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "Page not found.")
		return
	}
	renderPage(page)
	writeJSON(w, http.StatusOK, page)
}
