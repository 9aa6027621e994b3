package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
	"photoset/api/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique DSN per test keeps parallel tests from sharing tables.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newAuthService(db *gorm.DB) service.AuthService {
	return service.NewAuthService(
		repository.NewPGUserRepository(db),
		repository.NewPGSessionRepository(db),
		repository.NewPGSecurityLogRepository(db),
		repository.NewMemoryTokenStore(),
		30*24*time.Hour,
		time.Hour,
		50,
		3,
	)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user, err := newAuthService(db).Register(context.Background(), service.RegisterInput{
		Email:    email,
		Username: "tester",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *model.User {
	t.Helper()

	var user model.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}
