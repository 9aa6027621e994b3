package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/repository"
	"photoset/api/pkg/crypto"
)

const defaultPromoGenerations = 15

// RedeemResult reports the credit grant applied by a successful redemption.
type RedeemResult struct {
	GenerationsAdded int `json:"generations_added"`
}

type PromoService interface {
	// Redeem grants the code's generation credits to the user, once per user
	// per code.
	Redeem(ctx context.Context, userID uuid.UUID, code string) (*RedeemResult, error)
	Create(ctx context.Context, createdBy uuid.UUID, generations int, maxUses *int) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	Toggle(ctx context.Context, id uuid.UUID) (bool, error)
}

type promoService struct {
	promoRepo repository.PromoCodeRepository
}

func NewPromoService(promoRepo repository.PromoCodeRepository) PromoService {
	return &promoService{promoRepo: promoRepo}
}

func (s *promoService) Redeem(ctx context.Context, userID uuid.UUID, code string) (*RedeemResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	if !promo.IsActive {
		return nil, ErrPromoInactive
	}
	if promo.Exhausted() {
		return nil, ErrPromoExhausted
	}

	used, err := s.promoRepo.HasRedemption(ctx, promo.ID, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrPromoAlreadyUsed
	}

	if err := s.promoRepo.Redeem(ctx, promo.ID, userID, promo.GenerationsCount); err != nil {
		// A concurrent redemption by the same user hits the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPromoAlreadyUsed
		}
		return nil, err
	}

	return &RedeemResult{GenerationsAdded: promo.GenerationsCount}, nil
}

func (s *promoService) Create(ctx context.Context, createdBy uuid.UUID, generations int, maxUses *int) (*model.PromoCode, error) {
	if generations <= 0 {
		generations = defaultPromoGenerations
	}

	code, err := crypto.GeneratePromoCode()
	if err != nil {
		return nil, err
	}

	promo := &model.PromoCode{
		Code:             code,
		GenerationsCount: generations,
		MaxUses:          maxUses,
		IsActive:         true,
		CreatedBy:        createdBy,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *promoService) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.promoRepo.List(ctx, 50)
}

func (s *promoService) Toggle(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.promoRepo.ToggleActive(ctx, id)
}

var _ PromoService = (*promoService)(nil)
