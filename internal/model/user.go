package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionNone   SubscriptionStatus = "none"
	SubscriptionActive SubscriptionStatus = "active"
)

const (
	PlanFree     = "free"
	PlanStarter  = "starter"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

type User struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Email                 string             `gorm:"type:varchar(320);not null;index" json:"email"`
	Username              string             `gorm:"type:varchar(64);not null" json:"username"`
	PasswordHash          string             `gorm:"type:varchar(128);not null" json:"-"`
	FullName              string             `gorm:"type:varchar(256)" json:"full_name,omitempty"`
	AvatarURL             string             `gorm:"type:varchar(1024)" json:"avatar_url,omitempty"`
	Credits               int                `gorm:"not null;default:0" json:"credits"`
	Plan                  string             `gorm:"type:varchar(32);not null;default:'free'" json:"plan"`
	IsAdmin               bool               `gorm:"not null;default:false" json:"is_admin"`
	FreeGenerationsUsed   int                `gorm:"not null;default:0" json:"free_generations_used"`
	FreeGenerationsLimit  int                `gorm:"not null;default:3" json:"free_generations_limit"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:varchar(16);not null;default:'none'" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `json:"subscription_expires_at,omitempty"`
	LastLogin             *time.Time         `json:"last_login,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	DeletedAt             gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Subscribed reports whether the user has an active paid subscription.
func (u *User) Subscribed() bool {
	return u.SubscriptionStatus == SubscriptionActive
}
