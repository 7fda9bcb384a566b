package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/services"
	"portfolio/internal/utils"
)

type ProjectHandler struct {
	*Page
	projects *services.ProjectService
}

func NewProjectHandler(page *Page, projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Page: page, projects: projects}
}

// Index handles GET /
func (h *ProjectHandler) Index(c *gin.Context) {
	recent, err := h.projects.ListRecent(c.Request.Context(), services.RecentProjectsLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"recent_projects": recent})
}

// List handles GET /project?category=
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	categories, err := h.projects.DistinctCategories(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	projects, err := h.projects.ListAll(ctx, category)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "project.html", gin.H{
		"title":             "Projects",
		"projects":          projects,
		"categories":        categories,
		"selected_category": category,
	})
}

// Detail handles GET /project/:id
func (h *ProjectHandler) Detail(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		h.NotFound(c)
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "project_detail.html", gin.H{"title": project.Title, "project": project})
}

// Form handles GET /add_project and GET /add_project/:id. An id that does not
// resolve shows an empty form, and saving it creates a new project.
func (h *ProjectHandler) Form(c *gin.Context) {
	id, ok := h.optionalID(c)
	if !ok {
		return
	}

	var existing *models.Project
	form := models.ProjectInput{}
	if id != nil {
		project, err := h.projects.GetByID(c.Request.Context(), *id)
		switch {
		case err == nil:
			existing = project
			form = models.FromProject(project)
		case !errors.Is(err, services.ErrNotFound):
			h.fail(c, err)
			return
		}
	}
	h.renderForm(c, http.StatusOK, existing, form, nil)
}

// Save handles POST /add_project and POST /add_project/:id
func (h *ProjectHandler) Save(c *gin.Context) {
	id, ok := h.optionalID(c)
	if !ok {
		return
	}

	var in models.ProjectInput
	if err := c.ShouldBind(&in); err != nil {
		h.flash(c, "danger", "Invalid form submission")
		h.renderForm(c, http.StatusBadRequest, nil, in, nil)
		return
	}

	_, created, err := h.projects.Upsert(c.Request.Context(), id, in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			in.Prepare()
			h.renderForm(c, http.StatusUnprocessableEntity, h.existing(c, id), in, verr.Fields)
			return
		}
		_ = c.Error(err)
		h.flash(c, "danger", fmt.Sprintf("An error occurred: %v", err))
		h.renderForm(c, http.StatusInternalServerError, h.existing(c, id), in, nil)
		return
	}

	if created {
		h.flash(c, "success", "New Project created successfully!")
	} else {
		h.flash(c, "success", "Project updated successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/project")
}

// Delete handles POST /delete_project/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		h.NotFound(c)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.NotFound(c)
			return
		}
		_ = c.Error(err)
		h.flash(c, "danger", fmt.Sprintf("Error deleting project: %v", err))
		c.Redirect(http.StatusSeeOther, "/project")
		return
	}

	h.flash(c, "success", "Project deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/project")
}

// optionalID reads :id when the route has one. A malformed id has already
// been answered with a 404 when ok is false.
func (h *ProjectHandler) optionalID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Param("id")
	if raw == "" {
		return nil, true
	}
	id, err := utils.ParseUUID(raw)
	if err != nil {
		h.NotFound(c)
		return nil, false
	}
	return &id, true
}

// existing is a best-effort lookup used only to label a re-rendered form.
func (h *ProjectHandler) existing(c *gin.Context, id *uuid.UUID) *models.Project {
	if id == nil {
		return nil
	}
	project, err := h.projects.GetByID(c.Request.Context(), *id)
	if err != nil {
		return nil
	}
	return project
}

func (h *ProjectHandler) renderForm(c *gin.Context, code int, existing *models.Project, form models.ProjectInput, missing []string) {
	categories, err := h.projects.DistinctCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		categories = []string{}
	}
	h.render(c, code, "add_project.html", gin.H{
		"title":      "Add project",
		"project":    existing,
		"form":       form,
		"categories": categories,
		"missing":    missing,
	})
}
