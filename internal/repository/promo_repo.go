package repository

import (
	"context"

	"github.com/google/uuid"

	"photoset/api/internal/model"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, code *model.PromoCode) error
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context, limit int) ([]model.PromoCode, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (bool, error)
	HasRedemption(ctx context.Context, promoID, userID uuid.UUID) (bool, error)

	// Redeem applies the three writes of a redemption as one transaction:
	// insert the redemption row, increment used_count, credit the user.
	// The (promo, user) unique index makes concurrent duplicates fail inside
	// the transaction rather than double-credit.
	Redeem(ctx context.Context, promoID, userID uuid.UUID, credits int) error
}
