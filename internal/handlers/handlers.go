// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP API. Handlers are grouped per
// concern (public reads, admin CRUD, auth, uploads) and answer JSON;
// errors are {"error": "message"} bodies whose messages the admin UI
// shows verbatim.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"atelier/internal/markdown"
	"atelier/internal/models"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError answers with {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRaw writes a pre-marshalled JSON body, used when serving from the
// response cache.
func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// idParam parses the {id} URL parameter. Writes a 400 and returns false
// on malformed input.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID.")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody unmarshals the request body into v. Writes a 400 and
// returns false on malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}

// renderProject fills ContentHTML for markdown projects. HTML content
// passes through untouched.
func renderProject(p *models.Project) {
	if p.ContentFormat != models.ContentFormatMarkdown {
		p.ContentHTML = p.Content
		return
	}
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("markdown render failed", "project", p.ID, "error", err)
		return
	}
	p.ContentHTML = html
}

// renderPage fills ContentHTML for markdown pages.
func renderPage(p *models.Page) {
	if p.ContentFormat != models.ContentFormatMarkdown {
		p.ContentHTML = p.Content
		return
	}
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("markdown render failed", "page", p.ID, "error", err)
		return
	}
	p.ContentHTML = html
}
