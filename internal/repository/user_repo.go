package repository

import (
	"context"

	"github.com/google/uuid"

	"photoset/api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// ConsumeFreeGeneration atomically increments the free-tier counter.
	// Returns false when the limit is already reached (the guard lost a race
	// or the quota is spent).
	ConsumeFreeGeneration(ctx context.Context, id uuid.UUID) (bool, error)
	// ConsumeCredit atomically decrements the paid credit balance.
	// Returns false when no credit remains.
	ConsumeCredit(ctx context.Context, id uuid.UUID) (bool, error)

	List(ctx context.Context, limit int) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	SumCreditsExcludingPlan(ctx context.Context, plan string) (int64, error)
}
