package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

// A registration that loses the race past the existence pre-check hits the
// unique email index; the error must come back as gorm.ErrDuplicatedKey so
// the service can map it to a conflict.
func TestCreateDuplicateEmailTranslates(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPGUserRepository(db)
	ctx := context.Background()

	first := &model.User{Email: "dup@example.com", Username: "a", PasswordHash: "x"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := &model.User{Email: "dup@example.com", Username: "b", PasswordHash: "y"}
	err := repo.Create(ctx, second)
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

// A concurrent double-redeem that slips past the pre-check lands on the
// (promo, user) unique index inside the redemption transaction. The rollback
// must keep the balance intact and the error must translate to
// gorm.ErrDuplicatedKey for the already-used mapping.
func TestRedeemDuplicateTranslatesAndRollsBack(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewPGUserRepository(db)
	promoRepo := repository.NewPGPromoCodeRepository(db)
	ctx := context.Background()

	user := &model.User{Email: "racer@example.com", Username: "r", PasswordHash: "x", Credits: 50}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	promo := &model.PromoCode{Code: "RACE10CODE", GenerationsCount: 10, IsActive: true, CreatedBy: user.ID}
	if err := promoRepo.Create(ctx, promo); err != nil {
		t.Fatalf("create promo: %v", err)
	}

	if err := promoRepo.Redeem(ctx, promo.ID, user.ID, promo.GenerationsCount); err != nil {
		t.Fatalf("first redeem: %v", err)
	}

	err := promoRepo.Redeem(ctx, promo.ID, user.ID, promo.GenerationsCount)
	if err == nil {
		t.Fatal("expected second redemption to be rejected")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	var reloaded model.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Credits != 60 {
		t.Errorf("expected credits 60 after one redemption, got %d", reloaded.Credits)
	}
	var promoRow model.PromoCode
	if err := db.First(&promoRow, "id = ?", promo.ID).Error; err != nil {
		t.Fatalf("reload promo: %v", err)
	}
	if promoRow.UsedCount != 1 {
		t.Errorf("expected used_count 1 after rollback, got %d", promoRow.UsedCount)
	}
}
