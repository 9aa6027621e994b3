package repository

import (
	"context"

	"github.com/google/uuid"

	"photoset/api/internal/model"
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.GeneratedImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.GeneratedImage, error)
	// ListByUser returns the user's non-archived images, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.GeneratedImage, error)
	// ListAll returns non-archived images across all users with the owner
	// preloaded, newest first.
	ListAll(ctx context.Context, limit, offset int) ([]model.GeneratedImage, error)
	SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error
	SetArchived(ctx context.Context, id, userID uuid.UUID, archived bool) error
	Count(ctx context.Context) (int64, error)
	CountVisible(ctx context.Context) (int64, error)
}
