package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/research-lab-backend/models"
)

type projectHandler struct {
	entityHandler[models.Project, *models.Project]
	researchStore researchStore
}

func newProjectHandler(store entityStore[models.Project], research researchStore) projectHandler {
	return projectHandler{
		entityHandler: newEntityHandler[models.Project, *models.Project]("projectHandler", "project", store),
		researchStore: research,
	}
}

// ProjectResearch lists the research a project is attached to. Dangling holds
// attached ids whose research no longer exists.
type ProjectResearch struct {
	ProjectID uint              `json:"projectId"`
	Research  []models.Research `json:"research"`
	Dangling  []uint            `json:"danglingIds"`
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects from the database, newest first
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return h.list()
}

// getProject retrieves a specific project by ID
// @Summary Get project by ID
// @Description Retrieves a specific project by its ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project ID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return h.get()
}

// createProject creates a new project
// @Summary Create a new project
// @Description Creates a new project. Title, description and status are required.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project object"
// @Success 201 {object} models.Project "Project created successfully"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing required field or invalid research id"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return h.create()
}

// updateProject updates an existing project
// @Summary Update a project
// @Description Merges the given fields over the project identified by the body id
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Fields to change, with id"
// @Success 200 {object} models.Project "Project updated successfully"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return h.update()
}

// deleteProject deletes a project
// @Summary Delete a project
// @Tags Projects
// @Produce json
// @Param id query int true "Project ID"
// @Success 200 {object} DeleteResponse "Project deleted successfully"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return h.delete()
}

// getProjectResearch resolves the research attached to a project
// @Summary Get research attached to a project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ProjectResearch
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{id}/research [get]
func (h projectHandler) getProjectResearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := models.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		project.Normalize()

		ids := make([]uint, 0, len(project.AttachedResearchIDs))
		for _, ref := range project.AttachedResearchIDs {
			ids = append(ids, uint(ref))
		}

		research, err := h.researchStore.FindByIDs(r.Context(), ids)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "research", err))
			return
		}

		attached, dangling := project.ResolveResearch(research)
		if attached == nil {
			attached = []models.Research{}
		}
		if dangling == nil {
			dangling = []uint{}
		}
		for i := range attached {
			attached[i].Normalize()
		}
		if len(dangling) > 0 {
			h.logger.Debug().Uint("projectId", id).Uints("danglingIds", dangling).Msg("project references missing research")
		}

		h.responder.WriteJSON(w, http.StatusOK, ProjectResearch{
			ProjectID: id,
			Research:  attached,
			Dangling:  dangling,
		})
	}
}
