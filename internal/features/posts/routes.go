package posts

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the post routes. extra is mounted on the group
// before the :id routes, e.g. the identifier search.
func RegisterRoutes(router *gin.RouterGroup, service *Service, extra ...func(*gin.RouterGroup)) {
	RegisterBindings()
	handler := NewHandler(service)

	posts := router.Group("/posts")
	{
		posts.POST("", handler.CreatePost)
		posts.GET("", handler.ListPosts)
		for _, register := range extra {
			register(posts)
		}
		posts.GET("/user/:userId", handler.ListUserPosts)
		posts.GET("/:id", handler.GetPost)
		posts.PUT("/:id", handler.UpdatePost)
		posts.DELETE("/:id", handler.DeletePost)
	}
}
