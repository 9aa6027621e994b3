package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgPromoCodeRepository struct {
	db *gorm.DB
}

func NewPGPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &pgPromoCodeRepository{db: db}
}

func (r *pgPromoCodeRepository) Create(ctx context.Context, code *model.PromoCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *pgPromoCodeRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *pgPromoCodeRepository) List(ctx context.Context, limit int) ([]model.PromoCode, error) {
	var codes []model.PromoCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *pgPromoCodeRepository) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := r.db.WithContext(ctx).
		Model(&model.PromoCode{}).
		Where("id = ?", id).
		UpdateColumn("is_active", gorm.Expr("NOT is_active")).
		Error; err != nil {
		return false, err
	}
	var promo model.PromoCode
	if err := r.db.WithContext(ctx).First(&promo, "id = ?", id).Error; err != nil {
		return false, err
	}
	return promo.IsActive, nil
}

func (r *pgPromoCodeRepository) HasRedemption(ctx context.Context, promoID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.PromoRedemption{}).
		Where("promo_code_id = ? AND user_id = ?", promoID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *pgPromoCodeRepository) Redeem(ctx context.Context, promoID, userID uuid.UUID, credits int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PromoRedemption{PromoCodeID: promoID, UserID: userID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.PromoCode{}).
			Where("id = ?", promoID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1")).
			Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			UpdateColumn("credits", gorm.Expr("credits + ?", credits)).
			Error
	})
}
