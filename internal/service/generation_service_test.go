package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/provider/openai"
	"photoset/api/internal/repository"
	"photoset/api/internal/service"
)

type fakeGenerator struct {
	calls int
	url   string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ openai.GenerateRequest) (*openai.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &openai.Image{URL: f.url}, nil
}

func newGenerationService(db *gorm.DB, gen *fakeGenerator) service.GenerationService {
	return service.NewGenerationService(repository.NewPGUserRepository(db), gen, zap.NewNop())
}

func TestGenerateConsumesFreeTier(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{url: "https://cdn.example.com/img.png"}
	svc := newGenerationService(db, gen)

	user := seedUser(t, db, "olga@example.com")
	if err := db.Model(user).UpdateColumn("free_generations_used", 2).Error; err != nil {
		t.Fatalf("seed usage: %v", err)
	}
	user.FreeGenerationsUsed = 2

	result, err := svc.Generate(context.Background(), user, service.GenerateInput{Prompt: "a red fox"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.ImageURL != gen.url {
		t.Errorf("expected provider URL, got %q", result.ImageURL)
	}
	if result.RemainingFree == nil || *result.RemainingFree != 0 {
		t.Errorf("expected remaining_free 0, got %v", result.RemainingFree)
	}
	if got := reloadUser(t, db, user.ID).FreeGenerationsUsed; got != 3 {
		t.Errorf("expected free_generations_used 3, got %d", got)
	}
}

func TestGenerateFreeLimitExceeded(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{url: "https://cdn.example.com/img.png"}
	svc := newGenerationService(db, gen)

	user := seedUser(t, db, "pete@example.com")
	if err := db.Model(user).UpdateColumn("free_generations_used", user.FreeGenerationsLimit).Error; err != nil {
		t.Fatalf("seed usage: %v", err)
	}
	user.FreeGenerationsUsed = user.FreeGenerationsLimit

	_, err := svc.Generate(context.Background(), user, service.GenerateInput{Prompt: "a red fox"})
	if !errors.Is(err, service.ErrFreeLimitExceeded) {
		t.Fatalf("expected ErrFreeLimitExceeded, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("provider must not be called when over the limit, got %d calls", gen.calls)
	}
}

func TestGenerateSubscribedConsumesCredit(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{url: "https://cdn.example.com/img.png"}
	svc := newGenerationService(db, gen)

	user := seedUser(t, db, "quinn@example.com")
	updates := map[string]interface{}{
		"subscription_status": model.SubscriptionActive,
		"credits":             2,
	}
	if err := db.Model(user).UpdateColumns(updates).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	user.SubscriptionStatus = model.SubscriptionActive
	user.Credits = 2

	result, err := svc.Generate(context.Background(), user, service.GenerateInput{Prompt: "a red fox"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.RemainingCredits == nil || *result.RemainingCredits != 1 {
		t.Errorf("expected remaining_credits 1, got %v", result.RemainingCredits)
	}
	if result.RemainingFree != nil {
		t.Error("subscribed users must not report a free-tier counter")
	}
	if got := reloadUser(t, db, user.ID).Credits; got != 1 {
		t.Errorf("expected 1 credit left, got %d", got)
	}
	if got := reloadUser(t, db, user.ID).FreeGenerationsUsed; got != 0 {
		t.Errorf("free counter must stay untouched for subscribed users, got %d", got)
	}
}

func TestGenerateNoCredits(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{url: "https://cdn.example.com/img.png"}
	svc := newGenerationService(db, gen)

	user := seedUser(t, db, "rita@example.com")
	updates := map[string]interface{}{
		"subscription_status": model.SubscriptionActive,
		"credits":             0,
	}
	if err := db.Model(user).UpdateColumns(updates).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	user.SubscriptionStatus = model.SubscriptionActive
	user.Credits = 0

	_, err := svc.Generate(context.Background(), user, service.GenerateInput{Prompt: "a red fox"})
	if !errors.Is(err, service.ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("provider must not be called without credits, got %d calls", gen.calls)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	db := newTestDB(t)
	svc := newGenerationService(db, &fakeGenerator{})

	user := seedUser(t, db, "sam@example.com")
	if _, err := svc.Generate(context.Background(), user, service.GenerateInput{}); !errors.Is(err, service.ErrPromptRequired) {
		t.Fatalf("expected ErrPromptRequired, got %v", err)
	}
}

func TestGenerateProviderErrorLeavesQuotaUntouched(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{err: &openai.Error{StatusCode: 429, Message: "rate limited"}}
	svc := newGenerationService(db, gen)

	user := seedUser(t, db, "tara@example.com")

	_, err := svc.Generate(context.Background(), user, service.GenerateInput{Prompt: "a red fox"})
	var provErr *openai.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if got := reloadUser(t, db, user.ID).FreeGenerationsUsed; got != 0 {
		t.Errorf("failed generations must not consume quota, got used=%d", got)
	}
}
