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
	"atelier/internal/store"
)

// categoryRequest is the JSON body for category create and update.
type categoryRequest struct {
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder *int       `json:"sort_order"`
}

// checkParent enforces the two-level rule: a parent, when given, must
// exist and itself be a root. Returns a user-facing message on failure.
func (a *Admin) checkParent(parentID *uuid.UUID, self *uuid.UUID) (string, error) {
	if parentID == nil {
		return "", nil
	}
	if self != nil && *parentID == *self {
		return "A category cannot be its own parent.", nil
	}
	parent, err := a.categories.FindByID(*parentID)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "Parent category not found.", nil
	}
	if !parent.IsRoot() {
		return "Parent must be a top-level category.", nil
	}
	return "", nil
}

// CreateCategory handles POST /api/categories.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	msg, err := a.checkParent(req.ParentID, nil)
	if err != nil {
		slog.Error("category parent check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Name, a.categories.SlugExists, nil)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A category with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("category slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else if next, err := a.categories.NextSortOrder(req.ParentID); err == nil {
		sortOrder = next
	}

	created, err := a.categories.Create(&models.Category{
		Name:      req.Name,
		Slug:      resolved,
		ParentID:  req.ParentID,
		SortOrder: sortOrder,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearCategories(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory handles PUT /api/categories/{id}.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Category not found.")
		return
	}

	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	msg, err := a.checkParent(req.ParentID, &id)
	if err != nil {
		slog.Error("category parent check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, err := resolveSlug(req.Slug, req.Name, a.categories.SlugExists, &id)
	if errors.Is(err, errSlugTaken) {
		writeError(w, http.StatusConflict, "A category with this slug already exists.")
		return
	}
	if err != nil {
		slog.Error("category slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing.Name = req.Name
	existing.Slug = resolved
	existing.ParentID = req.ParentID
	if req.SortOrder != nil {
		existing.SortOrder = *req.SortOrder
	}
	if err := a.categories.Update(existing); err != nil {
		slog.Error("update category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearCategories(r.Context())
	writeJSON(w, http.StatusOK, existing)
}

// DeleteCategory handles DELETE /api/categories/{id}. The store rejects
// the delete inside a transaction while children or projects still
// reference the category.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Category not found.")
		return
	}

	switch err := a.categories.Delete(id); {
	case errors.Is(err, store.ErrCategoryInUse):
		writeError(w, http.StatusConflict, "This category has child categories or projects and cannot be deleted.")
		return
	case err != nil:
		slog.Error("delete category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.cache.ClearCategories(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
