package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/internal/middlewares"
	"portfolio/internal/services"
)

// Page is embedded by every HTML handler. It injects the admin flag and any
// queued flash messages into the template data.
type Page struct {
	sessions *services.SessionService
	logger   *zap.Logger
}

func (p *Page) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["is_admin"] = middlewares.IsAdmin(c)
	data["flashes"] = p.sessions.PopFlashes(c.Request.Context(), middlewares.CurrentSession(c))
	c.HTML(code, name, data)
}

func (p *Page) flash(c *gin.Context, category, message string) {
	p.sessions.AddFlash(c.Request.Context(), middlewares.CurrentSession(c), category, message)
}

// fail renders the 404 page for ErrNotFound and the error page otherwise.
func (p *Page) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, services.ErrNotFound) {
		p.render(c, http.StatusNotFound, "404.html", gin.H{"title": "Not found"})
		return
	}
	p.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	p.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Error",
		"message": "Something went wrong. Please try again",
	})
}

// NotFound serves unmatched routes.
func (p *Page) NotFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "404.html", gin.H{"title": "Not found"})
}

func NewPage(sessions *services.SessionService, logger *zap.Logger) *Page {
	return &Page{sessions: sessions, logger: logger}
}
