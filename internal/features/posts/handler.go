package posts

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

// Handler handles post-related HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePost godoc
// @Summary Create post
// @Description Report a lost or found item. Date defaults to today and status to LOST.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostRequest true "Post"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 400 {object} response.ErrorResponse
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "POST_CREATE_FAILED")
		return
	}

	response.Success(c, post)
}

// ListPosts godoc
// @Summary List posts
// @Description All posts newest first, optionally filtered by status. Hidden posts are included.
// @Tags posts
// @Produce json
// @Param status query string false "LOST, FOUND or RESOLVED"
// @Success 200 {object} response.SuccessResponse{data=[]Post}
// @Failure 400 {object} response.ErrorResponse
// @Router /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "status must be LOST, FOUND or RESOLVED", "INVALID_STATUS")
		return
	}

	posts, err := h.service.List(c.Request.Context(), Status(strings.ToUpper(query.Status)))
	if err != nil {
		response.FromError(c, err, "INVALID_STATUS")
		return
	}

	response.Success(c, posts)
}

// GetPost godoc
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "POST_NOT_FOUND")
		return
	}

	response.Success(c, post)
}

// ListUserPosts godoc
// @Summary List posts by user
// @Tags posts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=[]Post}
// @Router /posts/user/{userId} [get]
func (h *Handler) ListUserPosts(c *gin.Context) {
	posts, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err, "")
		return
	}

	response.Success(c, posts)
}

// UpdatePost godoc
// @Summary Replace post
// @Description Full replace under the original id
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body PostRequest true "Post"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	post, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err, "POST_NOT_FOUND")
		return
	}

	response.Success(c, post)
}

// DeletePost godoc
// @Summary Delete post
// @Description Idempotent. Claims referencing the post are kept.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
