package admin

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /admin behind guard. extra registers further
// moderation routes on the same guarded group.
func RegisterRoutes(router *gin.RouterGroup, service *Service, guard gin.HandlerFunc, extra ...func(*gin.RouterGroup)) {
	handler := NewHandler(service)

	admin := router.Group("/admin", guard)
	{
		admin.GET("/stats", handler.GetStats)
		admin.GET("/users", handler.ListUsers)
		admin.PUT("/users/:id/block", handler.ToggleBlockUser)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.PUT("/posts/:id/hide", handler.ToggleHidePost)
		admin.DELETE("/posts/:id", handler.DeletePost)
		for _, register := range extra {
			register(admin)
		}
	}
}
