package api

import (
	"net/http"

	"github.com/rpupo63/research-lab-backend/models"
)

type publicationHandler struct {
	entityHandler[models.Publication, *models.Publication]
}

func newPublicationHandler(store entityStore[models.Publication]) publicationHandler {
	return publicationHandler{
		newEntityHandler[models.Publication, *models.Publication]("publicationHandler", "publication", store),
	}
}

// @Summary Get all publications
// @Tags Publications
// @Produce json
// @Success 200 {array} models.Publication
// @Failure 500 {object} ErrorResponse
// @Router /publications [get]
func (h publicationHandler) getAllPublications() http.HandlerFunc {
	return h.list()
}

// @Summary Get publication by ID
// @Tags Publications
// @Produce json
// @Param id path int true "Publication ID"
// @Success 200 {object} models.Publication
// @Failure 404 {object} ErrorResponse
// @Router /publications/{id} [get]
func (h publicationHandler) getPublication() http.HandlerFunc {
	return h.get()
}

// @Summary Create publication
// @Tags Publications
// @Accept json
// @Produce json
// @Param publication body models.Publication true "Publication"
// @Success 201 {object} models.Publication
// @Failure 400 {object} ErrorResponse
// @Router /publications [post]
func (h publicationHandler) createPublication() http.HandlerFunc {
	return h.create()
}

// @Summary Update publication
// @Tags Publications
// @Accept json
// @Produce json
// @Param publication body models.Publication true "Fields to change, with id"
// @Success 200 {object} models.Publication
// @Failure 404 {object} ErrorResponse
// @Router /publications [put]
func (h publicationHandler) updatePublication() http.HandlerFunc {
	return h.update()
}

// @Summary Delete publication
// @Tags Publications
// @Produce json
// @Param id query int true "Publication ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Router /publications [delete]
func (h publicationHandler) deletePublication() http.HandlerFunc {
	return h.delete()
}
