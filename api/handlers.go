package api

import (
	"time"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(stores stores, uploader Uploader, auth AuthSettings, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		researchHandler:    newResearchHandler(stores.research),
		projectHandler:     newProjectHandler(stores.projects, stores.research),
		publicationHandler: newPublicationHandler(stores.publications),
		galleryHandler:     newGalleryHandler(stores.gallery),
		uploadHandler:      newUploadHandler(uploader),
		authHandler:        newAuthHandler(auth),
		healthHandler:      newHealthHandler(startupTime),
	}
}
