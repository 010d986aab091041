package store

import (
	"testing"

	"github.com/google/uuid"

	"atelier/internal/models"
)

func TestProjectCRUD(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	t.Cleanup(func() { cleanProjects(t, db, "test-hillside-villa") })

	main := "https://media.atelier.example/projects/hillside/main.jpg"
	created, err := s.Create(&models.Project{
		Title:         "Test Hillside Villa",
		Slug:          "test-hillside-villa",
		Description:   "Family home on a steep plot.",
		Content:       "# Brief\n\nSouth-facing slope.",
		ContentFormat: models.ContentFormatMarkdown,
		MainImageURL:  &main,
		GalleryURLs:   models.GalleryURLs{"a.jpg", "b.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if created.Published {
		t.Error("new project should default to draft")
	}
	if len(created.GalleryURLs) != 2 {
		t.Errorf("gallery: got %v", created.GalleryURLs)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.ContentFormat != models.ContentFormatMarkdown {
		t.Errorf("FindByID: got %+v", found)
	}

	created.Published = true
	created.Description = "Updated description."
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	bySlug, err := s.FindBySlug("test-hillside-villa")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || !bySlug.Published {
		t.Errorf("FindBySlug after publish: got %+v", bySlug)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gone, _ := s.FindByID(created.ID); gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestProjectFindBySlugHidesDrafts(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	t.Cleanup(func() { cleanProjects(t, db, "test-draft-pavilion") })

	if _, err := s.Create(&models.Project{
		Title: "Test Draft Pavilion", Slug: "test-draft-pavilion",
		ContentFormat: models.ContentFormatHTML,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p, err := s.FindBySlug("test-draft-pavilion")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if p != nil {
		t.Error("draft must not be visible by slug")
	}
}

func TestProjectListPublished(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	t.Cleanup(func() { cleanProjects(t, db, "test-lp-pub", "test-lp-draft") })

	if _, err := s.Create(&models.Project{
		Title: "LP Pub", Slug: "test-lp-pub",
		ContentFormat: models.ContentFormatHTML, Published: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(&models.Project{
		Title: "LP Draft", Slug: "test-lp-draft",
		ContentFormat: models.ContentFormatHTML,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	published, err := s.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for _, p := range published {
		if p.Slug == "test-lp-draft" {
			t.Error("draft leaked into published list")
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var sawDraft bool
	for _, p := range all {
		if p.Slug == "test-lp-draft" {
			sawDraft = true
		}
	}
	if !sawDraft {
		t.Error("admin list must include drafts")
	}
}

func TestProjectGalleryRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	t.Cleanup(func() { cleanProjects(t, db, "test-gallery-rt") })

	created, err := s.Create(&models.Project{
		Title: "Gallery RT", Slug: "test-gallery-rt",
		ContentFormat: models.ContentFormatHTML,
		GalleryURLs:   models.GalleryURLs{"one.webp", "two.webp", "three.webp"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	want := []string{"one.webp", "two.webp", "three.webp"}
	if len(found.GalleryURLs) != len(want) {
		t.Fatalf("gallery: got %v, want %v", found.GalleryURLs, want)
	}
	for i, url := range want {
		if found.GalleryURLs[i] != url {
			t.Errorf("gallery[%d]: got %q, want %q", i, found.GalleryURLs[i], url)
		}
	}
}

func TestProjectImagesReplace(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	images := NewProjectImageStore(db)
	t.Cleanup(func() { cleanProjects(t, db, "test-images-replace") })

	proj, err := projects.Create(&models.Project{
		Title: "Images Replace", Slug: "test-images-replace",
		ContentFormat: models.ContentFormatHTML,
	})
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}

	err = images.Replace(proj.ID, []models.ProjectImage{
		{URL: "front.jpg", Alt: "Front elevation"},
		{URL: "side.jpg", Alt: "Side elevation"},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := images.ListByProject(proj.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("images: got %d, want 2", len(got))
	}
	if got[0].URL != "front.jpg" || got[0].SortOrder != 0 {
		t.Errorf("first image: got %+v", got[0])
	}
	if got[1].URL != "side.jpg" || got[1].SortOrder != 1 {
		t.Errorf("second image: got %+v", got[1])
	}

	// Replacing again drops the old rows.
	if err := images.Replace(proj.ID, []models.ProjectImage{{URL: "new.jpg"}}); err != nil {
		t.Fatalf("Replace again: %v", err)
	}
	got, _ = images.ListByProject(proj.ID)
	if len(got) != 1 || got[0].URL != "new.jpg" {
		t.Errorf("after second replace: got %+v", got)
	}

	// Rows cascade with the project.
	if err := projects.Delete(proj.ID); err != nil {
		t.Fatalf("Delete project: %v", err)
	}
	got, _ = images.ListByProject(proj.ID)
	if len(got) != 0 {
		t.Errorf("images after project delete: got %d, want 0", len(got))
	}
}
