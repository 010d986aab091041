package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for admin form fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxBodyLen     = 100_000
	maxDescLen     = 2_000
	maxMetaLen     = 500
	maxImageURLLen = 500
)

// validateName checks a category name.
func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxTitleLen {
		return "Name is too long (max 300 characters)."
	}
	return ""
}

// validateTitleBody checks the common title/slug/content trio on
// projects and pages and returns the first error found.
func validateTitleBody(title, slug, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxBodyLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateMetadata checks optional description and SEO fields.
func validateMetadata(description, metaTitle, metaDesc string) string {
	if utf8.RuneCountInString(description) > maxDescLen {
		return "Description is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(metaTitle) > maxTitleLen {
		return "Meta title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(metaDesc) > maxMetaLen {
		return "Meta description is too long (max 500 characters)."
	}
	return ""
}

// validateContentFormat normalizes the content_format field, defaulting
// empty input to html.
func validateContentFormat(format string) (string, string) {
	switch format {
	case "", "html":
		return "html", ""
	case "markdown":
		return "markdown", ""
	default:
		return "", "Content format must be html or markdown."
	}
}
