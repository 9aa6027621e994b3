package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratedImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Prompt     string    `gorm:"type:text;not null" json:"prompt"`
	ImageURL   string    `gorm:"type:varchar(2048);not null" json:"image_url"`
	Theme      string    `gorm:"type:varchar(128)" json:"theme,omitempty"`
	Model      string    `gorm:"type:varchar(64)" json:"model,omitempty"`
	IsFavorite bool      `gorm:"not null;default:false" json:"is_favorite"`
	IsArchived bool      `gorm:"not null;default:false;index" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated only on admin listings that preload the owner.
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GeneratedImage) TableName() string { return "generated_images" }

func (g *GeneratedImage) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
