// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"atelier/internal/models"
)

// pageRequest is the JSON body for page create and update. Every field
// the admin form exposes is persisted.
type pageRequest struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description"`
	Content         string     `json:"content"`
	ContentFormat   string     `json:"content_format"`
	FeaturedImage   *string    `json:"featured_image"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	ParentID        *uuid.UUID `json:"parent_id"`
	PageType        string     `json:"page_type"`
	Published       bool       `json:"published"`
	SortOrder       *int       `json:"sort_order"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validatePage runs the shared field checks for pages.
func (a *Admin) validatePage(req *pageRequest, self *uuid.UUID) (string, models.ContentFormat, models.PageType, error) {
	if msg := validateTitleBody(req.Title, req.Slug, req.Content); msg != "" {
		return msg, "", "", nil
	}
	if msg := validateMetadata(deref(req.Description), deref(req.MetaTitle), deref(req.MetaDescription)); msg != "" {
		return msg, "", "", nil
	}
	format, msg := validateContentFormat(req.ContentFormat)
	if msg != "" {
		return msg, "", "", nil
	}

	pageType := models.PageType(req.PageType)
	switch pageType {
	case "":
		pageType = models.PageTypeStandard
	case models.PageTypeStandard, models.PageTypeProcess, models.PageTypeLanding:
	default:
		return "Page type must be standard, process, or landing.", "", "", nil
	}

	if req.ParentID != nil {
		if self != nil && *req.ParentID == *self {
			return "A page cannot be its own parent.", "", "", nil
		}
		parent, err := a.pages.FindByID(*req.ParentID)
		if err != nil {
			return "", "", "", err
		}
		if parent == nil {
			return "Parent page not found.", "", "", nil
		}
	}

	return "", models.ContentFormat(format), pageType, nil
}

// CreatePage handles POST /api/pages.
func (a *Admin) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, format, pageType, err := a.validatePage(&req, nil)
	if err != nil {
		slog.Error("page validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Title, a.pages.SlugExists, nil)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A page with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("page slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	created, err := a.pages.Create(&models.Page{
		Title:           req.Title,
		Slug:            resolved,
		Description:     req.Description,
		Content:         req.Content,
		ContentFormat:   format,
		FeaturedImage:   req.FeaturedImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		ParentID:        req.ParentID,
		PageType:        pageType,
		Published:       req.Published,
		SortOrder:       sortOrder,
	})
	if err != nil {
		slog.Error("create page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearPages(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePage handles PUT /api/pages/{id}.
func (a *Admin) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.pages.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Page not found.")
		return
	}

	var req pageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, format, pageType, err := a.validatePage(&req, &id)
	if err != nil {
		slog.Error("page validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Title, a.pages.SlugExists, &id)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A page with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("page slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing.Title = req.Title
	existing.Slug = resolved
	existing.Description = req.Description
	existing.Content = req.Content
	existing.ContentFormat = format
	existing.FeaturedImage = req.FeaturedImage
	existing.MetaTitle = req.MetaTitle
	existing.MetaDescription = req.MetaDescription
	existing.ParentID = req.ParentID
	existing.PageType = pageType
	existing.Published = req.Published
	if req.SortOrder != nil {
		existing.SortOrder = *req.SortOrder
	}
	if err := a.pages.Update(existing); err != nil {
		slog.Error("update page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearPages(r.Context())
	writeJSON(w, http.StatusOK, existing)
}

// DeletePage handles DELETE /api/pages/{id}. Children are re-parented to
// root by the schema.
func (a *Admin) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.pages.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Page not found.")
		return
	}

	if err := a.pages.Delete(id); err != nil {
		slog.Error("delete page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearPages(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
