package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/handlers"
	"portfolio/internal/middlewares"
)

type AuthRoutes struct {
	handler *handlers.AuthHandler
}

func NewAuthRoutes(handler *handlers.AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/login", r.handler.LoginForm)
	router.POST("/login", r.handler.Login)
	router.GET("/logout", r.handler.Logout)

	router.GET("/dashboard", middlewares.RequireAdmin("/login"), r.handler.Dashboard)
	router.GET("/admin", middlewares.RequireAdmin("/"), r.handler.Admin)
}
