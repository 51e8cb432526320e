package interactions

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

// Handler handles claim-related HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RecordFound godoc
// @Summary Record a found claim
// @Description A finder reports having found the item behind a post. One claim per finder per post.
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body RecordFoundRequest true "Claim"
// @Success 200 {object} response.SuccessResponse{data=FoundInteraction}
// @Failure 400 {object} response.ErrorResponse "missing fields or duplicate claim"
// @Failure 429 {object} response.ErrorResponse
// @Router /interactions/found [post]
func (h *Handler) RecordFound(c *gin.Context) {
	var req RecordFoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	fi, err := h.service.RecordFound(c.Request.Context(), req)
	if err != nil {
		code := "INVALID_CLAIM"
		if isConflict(err) {
			code = "DUPLICATE_CLAIM"
		}
		response.FromError(c, err, code)
		return
	}

	response.Success(c, fi)
}

// ListFound godoc
// @Summary Posts a finder has claimed
// @Tags interactions
// @Produce json
// @Param email path string true "Finder email"
// @Success 200 {object} response.SuccessResponse{data=[]posts.Post}
// @Router /interactions/user/{email}/found [get]
func (h *Handler) ListFound(c *gin.Context) {
	found, err := h.service.ListFoundByFinder(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.FromError(c, err, "")
		return
	}

	response.Success(c, found)
}

// ListClaims godoc
// @Summary Claims on an owner's posts
// @Description Every claim regardless of status
// @Tags interactions
// @Produce json
// @Param email path string true "Owner email"
// @Success 200 {object} response.SuccessResponse{data=[]FoundInteraction}
// @Router /interactions/user/{email}/claims [get]
func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.service.ListClaimsForOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.FromError(c, err, "")
		return
	}

	response.Success(c, claims)
}

// ConfirmClaim godoc
// @Summary Confirm a claim
// @Description Accepts the claim from any state and resolves its post. Safe to repeat.
// @Tags interactions
// @Produce json
// @Param id path string true "Interaction ID"
// @Success 200 {object} response.SuccessResponse{data=ConfirmResult}
// @Failure 404 {object} response.ErrorResponse
// @Router /interactions/{id}/confirm [post]
func (h *Handler) ConfirmClaim(c *gin.Context) {
	result, err := h.service.ConfirmClaim(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "INTERACTION_NOT_FOUND")
		return
	}

	response.Success(c, result)
}

// RejectClaim godoc
// @Summary Reject a pending claim
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interaction ID"
// @Success 200 {object} response.SuccessResponse{data=FoundInteraction}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/interactions/{id}/reject [post]
func (h *Handler) RejectClaim(c *gin.Context) {
	fi, err := h.service.RejectClaim(c.Request.Context(), c.Param("id"))
	if err != nil {
		code := "INTERACTION_NOT_FOUND"
		if isConflict(err) {
			code = "INVALID_TRANSITION"
		}
		response.FromError(c, err, code)
		return
	}

	response.Success(c, fi)
}

func isConflict(err error) bool {
	return apperrors.Is(err, apperrors.ErrConflict)
}
