package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/models"
)

type GalleryRepo struct {
	crud[models.GalleryItem, *models.GalleryItem]
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{newCrud[models.GalleryItem](db, "gallery item")}
}
