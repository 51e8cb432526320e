package interactions

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public claim routes. recordLimits run ahead
// of POST /interactions/found.
func RegisterRoutes(router *gin.RouterGroup, service *Service, recordLimits ...gin.HandlerFunc) {
	handler := NewHandler(service)

	interactions := router.Group("/interactions")
	{
		record := append(append([]gin.HandlerFunc{}, recordLimits...), handler.RecordFound)
		interactions.POST("/found", record...)
		interactions.GET("/user/:email/found", handler.ListFound)
		interactions.GET("/user/:email/claims", handler.ListClaims)
		interactions.POST("/:id/confirm", handler.ConfirmClaim)
	}
}

// RegisterAdminRoutes mounts claim moderation on an already guarded group.
func RegisterAdminRoutes(admin *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)
	admin.POST("/interactions/:id/reject", handler.RejectClaim)
}
