package repository_test

import (
	"context"
	"testing"
	"time"

	"photoset/api/internal/repository"
)

func TestMemoryTokenStoreSetGetDelete(t *testing.T) {
	store := repository.NewMemoryTokenStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k1", []byte("v1"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(val) != "v1" {
		t.Errorf("expected v1, got %q", val)
	}

	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	val, err = store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil after delete, got %q", val)
	}
}

func TestMemoryTokenStoreTTL(t *testing.T) {
	store := repository.NewMemoryTokenStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k1", []byte("v1"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	val, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != nil {
		t.Errorf("expected expired entry to read as nil, got %q", val)
	}

	exists, err := store.Exists(ctx, "k1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("expired entry must not exist")
	}
}
