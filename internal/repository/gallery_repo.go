package repository

import (
	"context"

	"github.com/google/uuid"

	"photoset/api/internal/model"
)

type GalleryRepository interface {
	CreateItem(ctx context.Context, item *model.GalleryItem) error
	ListItems(ctx context.Context, category string) ([]model.GalleryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	CreatePhotoshoot(ctx context.Context, example *model.PhotoshootExample) error
	ListPhotoshoots(ctx context.Context) ([]model.PhotoshootExample, error)
}
