package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgUserRepository struct {
	db *gorm.DB
}

func NewPGUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *pgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *pgUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", gorm.Expr("CURRENT_TIMESTAMP")).
		Error
}

func (r *pgUserRepository) ConsumeFreeGeneration(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND free_generations_used < free_generations_limit", id).
		UpdateColumn("free_generations_used", gorm.Expr("free_generations_used + 1"))
	return res.RowsAffected > 0, res.Error
}

func (r *pgUserRepository) ConsumeCredit(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND credits > 0", id).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	return res.RowsAffected > 0, res.Error
}

func (r *pgUserRepository) List(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *pgUserRepository) SumCreditsExcludingPlan(ctx context.Context, plan string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("plan <> ?", plan).
		Select("COALESCE(SUM(credits), 0)").
		Scan(&sum).Error
	return sum, err
}
