package models

import (
	"strings"

	"gorm.io/gorm"
)

// GalleryItem is a captioned image. Category is free text even though the
// admin form offers a fixed list.
type GalleryItem struct {
	Model
	Title       string `json:"title" gorm:"type:text;not null" validate:"required"`
	Category    string `json:"category" gorm:"type:text;not null" validate:"required"`
	ImageURL    string `json:"imageUrl" gorm:"column:image_url;type:text;not null" validate:"required"`
	Description string `json:"description" gorm:"type:text;not null;default:''"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}

func (g *GalleryItem) Normalize() {
	g.Title = strings.TrimSpace(g.Title)
	g.Category = strings.TrimSpace(g.Category)
	g.ImageURL = strings.TrimSpace(g.ImageURL)
}

func (g *GalleryItem) BeforeSave(tx *gorm.DB) error {
	g.Normalize()
	return nil
}
