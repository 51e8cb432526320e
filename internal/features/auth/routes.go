package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the auth routes
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)

	auth := router.Group("/auth")
	{
		auth.POST("/admin/login", handler.AdminLogin)
		auth.POST("/admin/refresh", handler.Refresh)
		auth.POST("/google", handler.GoogleSignIn)
	}
}
