package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgImageRepository struct {
	db *gorm.DB
}

func NewPGImageRepository(db *gorm.DB) ImageRepository {
	return &pgImageRepository{db: db}
}

func (r *pgImageRepository) Create(ctx context.Context, image *model.GeneratedImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *pgImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GeneratedImage, error) {
	var image model.GeneratedImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *pgImageRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.GeneratedImage, error) {
	var images []model.GeneratedImage
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *pgImageRepository) ListAll(ctx context.Context, limit, offset int) ([]model.GeneratedImage, error) {
	var images []model.GeneratedImage
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_archived = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *pgImageRepository) SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error {
	return r.db.WithContext(ctx).
		Model(&model.GeneratedImage{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_favorite", favorite).
		Error
}

func (r *pgImageRepository) SetArchived(ctx context.Context, id, userID uuid.UUID, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&model.GeneratedImage{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_archived", archived).
		Error
}

func (r *pgImageRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.GeneratedImage{}).Count(&n).Error
	return n, err
}

func (r *pgImageRepository) CountVisible(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.GeneratedImage{}).
		Where("is_archived = ?", false).
		Count(&n).Error
	return n, err
}
