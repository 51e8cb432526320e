package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdminLogin godoc
// @Summary Admin login
// @Description Email and password login for ADMIN and OWNER accounts. Returns access and refresh tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=TokenResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required", "INVALID_REQUEST")
		return
	}

	tokens, err := h.service.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err, "LOGIN_FAILED")
		return
	}

	response.Success(c, tokens)
}

// Refresh godoc
// @Summary Refresh admin access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} response.SuccessResponse{data=TokenResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/admin/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Refresh token is required", "INVALID_REQUEST")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err, "INVALID_TOKEN")
		return
	}

	response.Success(c, tokens)
}

// GoogleSignIn godoc
// @Summary Google sign-in
// @Description Verifies a Firebase ID token and upserts the user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleSignInRequest true "Firebase ID token"
// @Success 200 {object} response.SuccessResponse{data=users.User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.GoogleSignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err, "GOOGLE_SIGNIN_FAILED")
		return
	}

	response.Success(c, user)
}
