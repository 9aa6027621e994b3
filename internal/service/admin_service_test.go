package service_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"photoset/api/internal/repository"
	"photoset/api/internal/service"
)

func newAdminService(db *gorm.DB) service.AdminService {
	return service.NewAdminService(
		repository.NewPGUserRepository(db),
		repository.NewPGSessionRepository(db),
		repository.NewPGImageRepository(db),
		repository.NewPGGalleryRepository(db),
	)
}

func TestStatsCountsUsersAndSessions(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	seedUser(t, db, "fred@example.com")
	seedUser(t, db, "gina@example.com")

	auth := newAuthService(db)
	if _, err := auth.Login(ctx, "fred@example.com", "password123", service.ClientInfo{}); err != nil {
		t.Fatalf("login: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("expected 2 users, got %d", stats.TotalUsers)
	}
	if stats.ActiveUsers != 1 {
		t.Errorf("expected 1 active user, got %d", stats.ActiveUsers)
	}
	if stats.TotalImages != 0 {
		t.Errorf("expected 0 images, got %d", stats.TotalImages)
	}
}

func TestExportImagesPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	user := seedUser(t, db, "hank@example.com")
	images := newImageService(db, nil)
	for _, prompt := range []string{"one", "two", "three"} {
		if _, err := images.Save(ctx, user, service.SaveImageInput{
			Prompt:   prompt,
			ImageURL: "https://p.example.com/" + prompt + ".png",
		}); err != nil {
			t.Fatalf("save %s: %v", prompt, err)
		}
	}

	page, total, err := svc.ExportImages(ctx, 2, 0)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected page of 2, got %d", len(page))
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}

	rest, _, err := svc.ExportImages(ctx, 2, 2)
	if err != nil {
		t.Fatalf("export page 2: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 remaining image, got %d", len(rest))
	}
}

func TestGalleryPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "iris@example.com")

	item, err := svc.AddGalleryItem(ctx, admin.ID, service.GalleryItemInput{
		ImageURL: "https://cdn.example.com/g1.png",
		Title:    "Original title",
	})
	if err != nil {
		t.Fatalf("add gallery item: %v", err)
	}
	if item.Category != "gallery" {
		t.Errorf("expected default category, got %q", item.Category)
	}

	hidden := false
	newTitle := "Updated title"
	if err := svc.UpdateGalleryItem(ctx, item.ID, service.GalleryItemUpdate{
		Title:     &newTitle,
		IsVisible: &hidden,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	listed, err := svc.ListGallery(ctx, "gallery")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 item, got %d", len(listed))
	}
	if listed[0].Title != newTitle {
		t.Errorf("title not updated: %q", listed[0].Title)
	}
	if listed[0].IsVisible {
		t.Error("expected item hidden")
	}
	if listed[0].ImageURL != "https://cdn.example.com/g1.png" {
		t.Errorf("untouched field changed: %q", listed[0].ImageURL)
	}
}

func TestPhotoshootExamples(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "jack@example.com")

	if _, err := svc.AddPhotoshoot(ctx, admin.ID, service.PhotoshootInput{
		ImageURL: "https://cdn.example.com/ps1.png",
		Title:    "Studio portrait",
		ThemeID:  "portrait",
	}); err != nil {
		t.Fatalf("add photoshoot: %v", err)
	}

	examples, err := svc.ListPhotoshoots(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(examples))
	}
	if examples[0].Icon != "Image" {
		t.Errorf("expected default icon, got %q", examples[0].Icon)
	}
}
