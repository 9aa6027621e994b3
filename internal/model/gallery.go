package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageURL     string    `gorm:"type:varchar(2048);not null" json:"image_url"`
	Title        string    `gorm:"type:varchar(256)" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Theme        string    `gorm:"type:varchar(128)" json:"theme"`
	Category     string    `gorm:"type:varchar(64);not null;default:'gallery';index" json:"category"`
	IsVisible    bool      `gorm:"not null;default:true" json:"is_visible"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (GalleryItem) TableName() string { return "gallery_items" }

func (g *GalleryItem) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type PhotoshootExample struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageURL     string    `gorm:"type:varchar(2048);not null" json:"image_url"`
	Title        string    `gorm:"type:varchar(256);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ThemeID      string    `gorm:"type:varchar(128)" json:"theme_id"`
	Icon         string    `gorm:"type:varchar(64);not null;default:'Image'" json:"icon"`
	IsVisible    bool      `gorm:"not null;default:true" json:"is_visible"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PhotoshootExample) TableName() string { return "photoshoot_examples" }

func (p *PhotoshootExample) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
