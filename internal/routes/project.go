package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/handlers"
	"portfolio/internal/middlewares"
)

type ProjectRoutes struct {
	handler *handlers.ProjectHandler
}

func NewProjectRoutes(handler *handlers.ProjectHandler) *ProjectRoutes {
	return &ProjectRoutes{handler: handler}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", r.handler.Index)
	router.GET("/project", r.handler.List)
	router.GET("/project/:id", r.handler.Detail)

	admin := router.Group("/")
	admin.Use(middlewares.RequireAdmin("/login"))
	{
		admin.GET("/add_project", r.handler.Form)
		admin.POST("/add_project", r.handler.Save)
		admin.GET("/add_project/:id", r.handler.Form)
		admin.POST("/add_project/:id", r.handler.Save)
		admin.POST("/delete_project/:id", r.handler.Delete)
	}
}
