package users

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

// Handler handles user-related HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SaveUser godoc
// @Summary Create or update user
// @Description Upserts a user profile keyed by email. The password only applies when the account is new.
// @Tags users
// @Accept json
// @Produce json
// @Param request body SaveUserRequest true "User profile"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 400 {object} response.ErrorResponse
// @Router /users [post]
func (h *Handler) SaveUser(c *gin.Context) {
	var req SaveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "INVALID_USER")
		return
	}

	response.Success(c, user)
}

// GetUserByEmail godoc
// @Summary Get user by email
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{email} [get]
func (h *Handler) GetUserByEmail(c *gin.Context) {
	user, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.FromError(c, err, "USER_NOT_FOUND")
		return
	}

	response.Success(c, user)
}
