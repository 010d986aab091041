// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"atelier/internal/models"
)

// projectRequest is the JSON body for project create and update.
type projectRequest struct {
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	Content       string             `json:"content"`
	ContentFormat string             `json:"content_format"`
	FeaturedImage *string            `json:"featured_image"`
	MainImageURL  *string            `json:"main_image_url"`
	GalleryURLs   models.GalleryURLs `json:"gallery_image_urls"`
	CategoryID    *uuid.UUID         `json:"category_id"`
	Published     bool               `json:"published"`
}

// validateProject runs the shared field checks. Returns a user-facing
// message, the normalized content format, or an internal error.
func (a *Admin) validateProject(req *projectRequest) (string, models.ContentFormat, error) {
	if msg := validateTitleBody(req.Title, req.Slug, req.Content); msg != "" {
		return msg, "", nil
	}
	if msg := validateMetadata(req.Description, "", ""); msg != "" {
		return msg, "", nil
	}
	format, msg := validateContentFormat(req.ContentFormat)
	if msg != "" {
		return msg, "", nil
	}
	if req.CategoryID != nil {
		cat, err := a.categories.FindByID(*req.CategoryID)
		if err != nil {
			return "", "", err
		}
		if cat == nil {
			return "Category not found.", "", nil
		}
	}
	return "", models.ContentFormat(format), nil
}

// CreateProject handles POST /api/projects.
func (a *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, format, err := a.validateProject(&req)
	if err != nil {
		slog.Error("project validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Title, a.projects.SlugExists, nil)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A project with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("project slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := a.projects.Create(&models.Project{
		Title:         req.Title,
		Slug:          resolved,
		Description:   req.Description,
		Content:       req.Content,
		ContentFormat: format,
		FeaturedImage: req.FeaturedImage,
		MainImageURL:  req.MainImageURL,
		GalleryURLs:   req.GalleryURLs,
		CategoryID:    req.CategoryID,
		Published:     req.Published,
	})
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearProjects(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProject handles PUT /api/projects/{id}.
func (a *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.projects.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, format, err := a.validateProject(&req)
	if err != nil {
		slog.Error("project validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Title, a.projects.SlugExists, &id)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A project with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("project slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing.Title = req.Title
	existing.Slug = resolved
	existing.Description = req.Description
	existing.Content = req.Content
	existing.ContentFormat = format
	existing.FeaturedImage = req.FeaturedImage
	existing.MainImageURL = req.MainImageURL
	existing.GalleryURLs = req.GalleryURLs
	existing.CategoryID = req.CategoryID
	existing.Published = req.Published
	if err := a.projects.Update(existing); err != nil {
		slog.Error("update project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearProjects(r.Context())
	writeJSON(w, http.StatusOK, existing)
}

// DeleteProject handles DELETE /api/projects/{id}.
func (a *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.projects.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Project not found.")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		slog.Error("delete project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Gallery objects referenced only by this project stay in S3; media
	// cleanup is a manual operation since URLs may be shared.
	a.cache.ClearProjects(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ReplaceProjectImages handles POST /api/projects/{id}/images: the body
// is the full gallery in display order and replaces the current rows.
func (a *Admin) ReplaceProjectImages(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.projects.FindByID(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Project not found.")
		return
	}

	var req []models.ProjectImage
	if !decodeBody(w, r, &req) {
		return
	}
	for _, img := range req {
		if img.URL == "" {
			writeError(w, http.StatusBadRequest, "Image URL is required.")
			return
		}
		if len(img.URL) > maxImageURLLen {
			writeError(w, http.StatusBadRequest, "Image URL is too long (max 500 characters).")
			return
		}
	}

	if err := a.images.Replace(id, req); err != nil {
		slog.Error("replace project images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The JSONB gallery column mirrors the rows so the cached public
	// lists stay consistent.
	urls := make(models.GalleryURLs, 0, len(req))
	for _, img := range req {
		urls = append(urls, img.URL)
	}
	existing.GalleryURLs = urls
	if err := a.projects.Update(existing); err != nil {
		slog.Error("sync project gallery failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	items, err := a.images.ListByProject(id)
	if err != nil {
		slog.Error("list project images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearProjects(r.Context())
	writeJSON(w, http.StatusOK, items)
}

// DeleteProjectImage handles DELETE /api/projects/{id}/images/{imageID}.
func (a *Admin) DeleteProjectImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	imageID, err := uuid.Parse(chi.URLParam(r, "imageID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID.")
		return
	}

	items, err := a.images.ListByProject(id)
	if err != nil {
		slog.Error("list project images failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	kept := items[:0]
	found := false
	for _, img := range items {
		if img.ID == imageID {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		writeError(w, http.StatusNotFound, "Image not found.")
		return
	}

	if err := a.images.Replace(id, kept); err != nil {
		slog.Error("delete project image failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if proj, err := a.projects.FindByID(id); err == nil && proj != nil {
		urls := make(models.GalleryURLs, 0, len(kept))
		for _, img := range kept {
			urls = append(urls, img.URL)
		}
		proj.GalleryURLs = urls
		if err := a.projects.Update(proj); err != nil {
			slog.Warn("sync project gallery failed", "error", err)
		}
	}

	a.cache.ClearProjects(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
