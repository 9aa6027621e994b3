package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"photoset/api/internal/repository"
	"photoset/api/internal/service"
)

type fakeRehoster struct {
	url string
	err error
}

func (f *fakeRehoster) Rehost(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newImageService(db *gorm.DB, rehoster service.ImageRehoster) service.ImageService {
	return service.NewImageService(repository.NewPGImageRepository(db), rehoster, zap.NewNop())
}

func TestSaveAssignsSessionOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, nil)

	user := seedUser(t, db, "yana@example.com")

	image, err := svc.Save(context.Background(), user, service.SaveImageInput{
		Prompt:   "a lighthouse at dusk",
		ImageURL: "https://provider.example.com/out.png",
		Theme:    "landscape",
		Model:    "dall-e-3",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if image.UserID != user.ID {
		t.Errorf("image owner mismatch: %s", image.UserID)
	}
	if image.ImageURL != "https://provider.example.com/out.png" {
		t.Errorf("unexpected url %q", image.ImageURL)
	}
}

func TestSaveRequiresPromptAndURL(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, nil)
	user := seedUser(t, db, "zack@example.com")

	_, err := svc.Save(context.Background(), user, service.SaveImageInput{Prompt: "only a prompt"})
	if !errors.Is(err, service.ErrImageFieldsRequired) {
		t.Fatalf("expected ErrImageFieldsRequired, got %v", err)
	}
}

func TestSaveRehostsWhenConfigured(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, &fakeRehoster{url: "https://cdn.example.com/2026/08/abc.png"})
	user := seedUser(t, db, "amy@example.com")

	image, err := svc.Save(context.Background(), user, service.SaveImageInput{
		Prompt:   "a lighthouse at dusk",
		ImageURL: "https://provider.example.com/out.png",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if image.ImageURL != "https://cdn.example.com/2026/08/abc.png" {
		t.Errorf("expected re-hosted url, got %q", image.ImageURL)
	}
}

func TestSaveKeepsProviderURLOnRehostFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, &fakeRehoster{err: errors.New("bucket unavailable")})
	user := seedUser(t, db, "ben@example.com")

	image, err := svc.Save(context.Background(), user, service.SaveImageInput{
		Prompt:   "a lighthouse at dusk",
		ImageURL: "https://provider.example.com/out.png",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if image.ImageURL != "https://provider.example.com/out.png" {
		t.Errorf("expected provider url kept, got %q", image.ImageURL)
	}
}

func TestListExcludesArchived(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, nil)
	ctx := context.Background()
	user := seedUser(t, db, "cleo@example.com")

	first, err := svc.Save(ctx, user, service.SaveImageInput{Prompt: "one", ImageURL: "https://p.example.com/1.png"})
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	if _, err := svc.Save(ctx, user, service.SaveImageInput{Prompt: "two", ImageURL: "https://p.example.com/2.png"}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	if err := svc.SetArchived(ctx, first.ID, user.ID, true); err != nil {
		t.Fatalf("archive: %v", err)
	}

	images, err := svc.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 visible image, got %d", len(images))
	}
	if images[0].Prompt != "two" {
		t.Errorf("wrong image survived the filter: %q", images[0].Prompt)
	}
}

func TestFavoriteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newImageService(db, nil)
	ctx := context.Background()

	owner := seedUser(t, db, "dina@example.com")
	other := seedUser(t, db, "eve@example.com")

	image, err := svc.Save(ctx, owner, service.SaveImageInput{Prompt: "mine", ImageURL: "https://p.example.com/3.png"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Another user's id silently matches nothing.
	if err := svc.SetFavorite(ctx, image.ID, other.ID, true); err != nil {
		t.Fatalf("cross-user favorite: %v", err)
	}
	images, err := svc.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if images[0].IsFavorite {
		t.Error("favorite must not apply across owners")
	}

	if err := svc.SetFavorite(ctx, image.ID, owner.ID, true); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	images, _ = svc.ListByUser(ctx, owner.ID)
	if !images[0].IsFavorite {
		t.Error("expected favorite flag set")
	}
}
