package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/middlewares"
	"portfolio/internal/services"
)

type AuthHandler struct {
	*Page
	projects *services.ProjectService
	contacts *services.ContactService
}

func NewAuthHandler(page *Page, projects *services.ProjectService, contacts *services.ContactService) *AuthHandler {
	return &AuthHandler{Page: page, projects: projects, contacts: contacts}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	err := h.sessions.Login(c.Request.Context(), middlewares.CurrentSession(c), username, password)
	if err != nil {
		code := http.StatusUnauthorized
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.flash(c, "danger", "Invalid credentials")
		} else {
			_ = c.Error(err)
			code = http.StatusInternalServerError
			h.flash(c, "danger", fmt.Sprintf("An error occurred: %v", err))
		}
		h.render(c, code, "login.html", gin.H{"title": "Login", "username": username})
		return
	}

	middlewares.MarkAdmin(c, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), middlewares.CurrentSession(c)); err != nil {
		h.fail(c, err)
		return
	}
	middlewares.MarkAdmin(c, false)
	c.Redirect(http.StatusFound, "/")
}

// Dashboard handles GET /dashboard
func (h *AuthHandler) Dashboard(c *gin.Context) {
	projects, err := h.projects.ListAll(c.Request.Context(), "")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{"title": "Dashboard", "projects": projects})
}

// Admin handles GET /admin
func (h *AuthHandler) Admin(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.projects.ListRecent(ctx, services.RecentProjectsLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	messages, err := h.contacts.ListRecent(ctx, services.RecentProjectsLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin.html", gin.H{
		"title":    "Admin",
		"projects": projects,
		"messages": messages,
	})
}
