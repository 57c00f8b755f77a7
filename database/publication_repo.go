package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/models"
)

type PublicationRepo struct {
	crud[models.Publication, *models.Publication]
}

func NewPublicationRepo(db *gorm.DB) *PublicationRepo {
	return &PublicationRepo{newCrud[models.Publication](db, "publication")}
}
