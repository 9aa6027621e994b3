package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an opaque bearer credential. Valid iff now < ExpiresAt.
type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	IPAddress    string    `gorm:"type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"type:varchar(512)" json:"user_agent,omitempty"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Session) TableName() string { return "user_sessions" }

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
