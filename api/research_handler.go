package api

import (
	"net/http"

	"github.com/rpupo63/research-lab-backend/models"
)

type researchHandler struct {
	entityHandler[models.Research, *models.Research]
}

func newResearchHandler(store researchStore) researchHandler {
	return researchHandler{
		newEntityHandler[models.Research, *models.Research]("researchHandler", "research", store),
	}
}

// getAllResearch retrieves every research entry
// @Summary Get all research
// @Description Retrieves all research entries, newest first
// @Tags Research
// @Produce json
// @Success 200 {array} models.Research "List of research entries"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching research"
// @Router /research [get]
func (h researchHandler) getAllResearch() http.HandlerFunc {
	return h.list()
}

// getResearch retrieves one research entry
// @Summary Get research by ID
// @Tags Research
// @Produce json
// @Param id path int true "Research ID"
// @Success 200 {object} models.Research
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /research/{id} [get]
func (h researchHandler) getResearch() http.HandlerFunc {
	return h.get()
}

// createResearch creates a research entry
// @Summary Create research
// @Description Creates a research entry. Authors, content sections and related publications default to empty lists.
// @Tags Research
// @Accept json
// @Produce json
// @Param research body models.Research true "Research entry"
// @Success 201 {object} models.Research
// @Failure 400 {object} ErrorResponse "Bad Request - Missing title or malformed sections"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /research [post]
func (h researchHandler) createResearch() http.HandlerFunc {
	return h.create()
}

// updateResearch updates a research entry
// @Summary Update research
// @Description Merges the given fields over the stored entry identified by the body id
// @Tags Research
// @Accept json
// @Produce json
// @Param research body models.Research true "Fields to change, with id"
// @Success 200 {object} models.Research
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /research [put]
func (h researchHandler) updateResearch() http.HandlerFunc {
	return h.update()
}

// deleteResearch deletes a research entry. Projects referencing it keep the id.
// @Summary Delete research
// @Tags Research
// @Produce json
// @Param id query int true "Research ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /research [delete]
func (h researchHandler) deleteResearch() http.HandlerFunc {
	return h.delete()
}
