package users

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/validator"
)

// RegisterRoutes registers the user routes
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	validator.RegisterBindings()
	handler := NewHandler(service)

	users := router.Group("/users")
	{
		users.POST("", handler.SaveUser)
		users.GET("/:email", handler.GetUserByEmail)
	}
}
