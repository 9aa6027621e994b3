package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromoCode struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code             string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	GenerationsCount int       `gorm:"not null" json:"generations_count"`
	UsedCount        int       `gorm:"not null;default:0" json:"used_count"`
	MaxUses          *int      `json:"max_uses,omitempty"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedBy        uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (PromoCode) TableName() string { return "promo_codes" }

func (p *PromoCode) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Exhausted reports whether the bounded use count has been reached.
func (p *PromoCode) Exhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}

// PromoRedemption enforces one redemption per user per code via the
// composite unique index.
type PromoRedemption struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PromoCodeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_promo_user" json:"promo_code_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_promo_user" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PromoRedemption) TableName() string { return "promo_code_usage" }

func (r *PromoRedemption) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
