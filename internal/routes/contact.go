package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/handlers"
)

type ContactRoutes struct {
	handler *handlers.ContactHandler
}

func NewContactRoutes(handler *handlers.ContactHandler) *ContactRoutes {
	return &ContactRoutes{handler: handler}
}

func (r *ContactRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/contact", r.handler.Form)
	router.POST("/contact", r.handler.Submit)
}
