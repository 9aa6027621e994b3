package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgGalleryRepository struct {
	db *gorm.DB
}

func NewPGGalleryRepository(db *gorm.DB) GalleryRepository {
	return &pgGalleryRepository{db: db}
}

func (r *pgGalleryRepository) CreateItem(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pgGalleryRepository) ListItems(ctx context.Context, category string) ([]model.GalleryItem, error) {
	var items []model.GalleryItem
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("display_order DESC, created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pgGalleryRepository) UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.GalleryItem{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

func (r *pgGalleryRepository) CreatePhotoshoot(ctx context.Context, example *model.PhotoshootExample) error {
	return r.db.WithContext(ctx).Create(example).Error
}

func (r *pgGalleryRepository) ListPhotoshoots(ctx context.Context) ([]model.PhotoshootExample, error) {
	var examples []model.PhotoshootExample
	if err := r.db.WithContext(ctx).
		Order("display_order DESC, created_at DESC").
		Find(&examples).Error; err != nil {
		return nil, err
	}
	return examples, nil
}
