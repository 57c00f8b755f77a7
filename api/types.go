package api

import (
	"context"
	"io"

	"github.com/rpupo63/research-lab-backend/database"
	"github.com/rpupo63/research-lab-backend/models"
	"github.com/rpupo63/research-lab-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	researchHandler    researchHandler
	projectHandler     projectHandler
	publicationHandler publicationHandler
	galleryHandler     galleryHandler
	uploadHandler      uploadHandler
	authHandler        authHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"title is required"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// recordPtr constrains P to a pointer to the entity type T.
type recordPtr[T any] interface {
	*T
	models.Record
}

// entityStore is the persistence an entity endpoint group needs.
type entityStore[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Add(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id uint) error
}

type researchStore interface {
	entityStore[models.Research]
	FindByIDs(ctx context.Context, ids []uint) ([]models.Research, error)
}

// stores groups the repositories behind the content API.
type stores struct {
	research     researchStore
	projects     entityStore[models.Project]
	publications entityStore[models.Publication]
	gallery      entityStore[models.GalleryItem]
}

func storesFromDatabase(db database.Database) stores {
	return stores{
		research:     db.ResearchRepo(),
		projects:     db.ProjectRepo(),
		publications: db.PublicationRepo(),
		gallery:      db.GalleryRepo(),
	}
}

// Uploader stores an uploaded file and describes where it went.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (services.StoredObject, error)
}
