package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/research-lab-backend/models"
)

type ProjectRepo struct {
	crud[models.Project, *models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{newCrud[models.Project](db, "project")}
}
