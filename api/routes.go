package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the read side used by the presentation layer.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())
	r.Post("/auth/login", handlers.authHandler.login())

	r.Get("/research", handlers.researchHandler.getAllResearch())
	r.Get("/research/{id}", handlers.researchHandler.getResearch())

	r.Get("/projects", handlers.projectHandler.getAllProjects())
	r.Get("/projects/{id}", handlers.projectHandler.getProject())
	r.Get("/projects/{id}/research", handlers.projectHandler.getProjectResearch())

	r.Get("/publications", handlers.publicationHandler.getAllPublications())
	r.Get("/publications/{id}", handlers.publicationHandler.getPublication())

	r.Get("/gallery", handlers.galleryHandler.getAllGalleryItems())
	r.Get("/gallery/{id}", handlers.galleryHandler.getGalleryItem())
}

// setupAdminRoutes registers every mutation. gate is nil when auth is off.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, gate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if gate != nil {
			r.Use(gate)
		}

		r.Post("/research", handlers.researchHandler.createResearch())
		r.Put("/research", handlers.researchHandler.updateResearch())
		r.Delete("/research", handlers.researchHandler.deleteResearch())

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects", handlers.projectHandler.updateProject())
		r.Delete("/projects", handlers.projectHandler.deleteProject())

		r.Post("/publications", handlers.publicationHandler.createPublication())
		r.Put("/publications", handlers.publicationHandler.updatePublication())
		r.Delete("/publications", handlers.publicationHandler.deletePublication())

		r.Post("/gallery", handlers.galleryHandler.createGalleryItem())
		r.Put("/gallery", handlers.galleryHandler.updateGalleryItem())
		r.Delete("/gallery", handlers.galleryHandler.deleteGalleryItem())

		r.Post("/upload", handlers.uploadHandler.uploadFile())
	})
}
