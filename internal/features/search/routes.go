package search

import (
	"github.com/gin-gonic/gin"
)

// Routes mounts GET /search on the posts group. Extra handlers such as a
// rate limiter run before the search handler.
func Routes(service *Service, middleware ...gin.HandlerFunc) func(*gin.RouterGroup) {
	handler := NewHandler(service)
	return func(posts *gin.RouterGroup) {
		chain := append(append([]gin.HandlerFunc{}, middleware...), handler.SearchByIdentifier)
		posts.GET("/search", chain...)
	}
}
