package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

// Handler serves the moderation dashboard.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats godoc
// @Summary Dashboard stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "STATS_FAILED")
		return
	}
	response.Success(c, stats)
}

// ListUsers godoc
// @Summary Users with their posts
// @Description Most recently active users first. Users without posts come last.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]UserActivity}
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.service.Users(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "USERS_FAILED")
		return
	}
	response.Success(c, list)
}

// ToggleBlockUser godoc
// @Summary Toggle user block
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=users.User}
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/users/{id}/block [put]
func (h *Handler) ToggleBlockUser(c *gin.Context) {
	user, err := h.service.ToggleBlocked(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "USER_NOT_FOUND")
		return
	}
	response.Success(c, user)
}

// ToggleHidePost godoc
// @Summary Toggle post visibility
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=posts.Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/posts/{id}/hide [put]
func (h *Handler) ToggleHidePost(c *gin.Context) {
	post, err := h.service.ToggleHidden(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "POST_NOT_FOUND")
		return
	}
	response.Success(c, post)
}

// DeleteUser godoc
// @Summary Delete user and their posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=DeleteUserResult}
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	res, err := h.service.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "USER_NOT_FOUND")
		return
	}
	response.Success(c, res)
}

// DeletePost godoc
// @Summary Delete post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.service.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "POST_NOT_FOUND")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
