package api

import (
	"net/http"

	"github.com/rpupo63/research-lab-backend/models"
)

type galleryHandler struct {
	entityHandler[models.GalleryItem, *models.GalleryItem]
}

func newGalleryHandler(store entityStore[models.GalleryItem]) galleryHandler {
	return galleryHandler{
		newEntityHandler[models.GalleryItem, *models.GalleryItem]("galleryHandler", "gallery item", store),
	}
}

// getAllGalleryItems retrieves every gallery item
// @Summary Get gallery
// @Tags Gallery
// @Produce json
// @Success 200 {array} models.GalleryItem
// @Router /gallery [get]
func (h galleryHandler) getAllGalleryItems() http.HandlerFunc {
	return h.list()
}

// @Summary Get gallery item by ID
// @Tags Gallery
// @Param id path int true "Gallery item ID"
// @Success 200 {object} models.GalleryItem
// @Failure 404 {object} ErrorResponse
// @Router /gallery/{id} [get]
func (h galleryHandler) getGalleryItem() http.HandlerFunc {
	return h.get()
}

// createGalleryItem adds an image to the gallery. The image itself is
// uploaded separately through /upload.
// @Summary Create gallery item
// @Tags Gallery
// @Accept json
// @Produce json
// @Param item body models.GalleryItem true "Gallery item"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} ErrorResponse "Bad Request - Missing title, category or imageUrl"
// @Router /gallery [post]
func (h galleryHandler) createGalleryItem() http.HandlerFunc {
	return h.create()
}

// @Summary Update gallery item
// @Tags Gallery
// @Accept json
// @Param item body models.GalleryItem true "Fields to change, with id"
// @Success 200 {object} models.GalleryItem
// @Router /gallery [put]
func (h galleryHandler) updateGalleryItem() http.HandlerFunc {
	return h.update()
}

// @Summary Delete gallery item
// @Tags Gallery
// @Param id query int true "Gallery item ID"
// @Success 200 {object} DeleteResponse
// @Router /gallery [delete]
func (h galleryHandler) deleteGalleryItem() http.HandlerFunc {
	return h.delete()
}
