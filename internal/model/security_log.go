package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SecurityLog records auth-sensitive events (register, login, password reset).
// Failed logins keep the internal reason here while the API returns a single
// generic error.
type SecurityLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(64);not null" json:"action"`
	Success   bool       `gorm:"not null" json:"success"`
	IPAddress string     `gorm:"type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent string     `gorm:"type:varchar(512)" json:"user_agent,omitempty"`
	Details   string     `gorm:"type:text" json:"details,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (SecurityLog) TableName() string { return "security_logs" }

func (l *SecurityLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
