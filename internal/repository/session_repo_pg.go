package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgSessionRepository struct {
	db *gorm.DB
}

func NewPGSessionRepository(db *gorm.DB) SessionRepository {
	return &pgSessionRepository{db: db}
}

func (r *pgSessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *pgSessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *pgSessionRepository) TouchActivity(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("token = ?", token).
		UpdateColumn("last_activity", gorm.Expr("CURRENT_TIMESTAMP")).
		Error
}

func (r *pgSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

func (r *pgSessionRepository) CountActiveUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("last_activity > ?", since).
		Distinct("user_id").
		Count(&n).Error
	return n, err
}
