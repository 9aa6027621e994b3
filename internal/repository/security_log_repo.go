package repository

import (
	"context"

	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type SecurityLogRepository interface {
	Record(ctx context.Context, entry *model.SecurityLog) error
}

type pgSecurityLogRepository struct {
	db *gorm.DB
}

func NewPGSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &pgSecurityLogRepository{db: db}
}

func (r *pgSecurityLogRepository) Record(ctx context.Context, entry *model.SecurityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
