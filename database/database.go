package database

import (
	"gorm.io/gorm"
)

type Database struct {
	researchRepo    *ResearchRepo
	projectRepo     *ProjectRepo
	publicationRepo *PublicationRepo
	galleryRepo     *GalleryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		researchRepo:    NewResearchRepo(db),
		projectRepo:     NewProjectRepo(db),
		publicationRepo: NewPublicationRepo(db),
		galleryRepo:     NewGalleryRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ResearchRepo() *ResearchRepo {
	return d.researchRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) PublicationRepo() *PublicationRepo {
	return d.publicationRepo
}

func (d Database) GalleryRepo() *GalleryRepo {
	return d.galleryRepo
}
