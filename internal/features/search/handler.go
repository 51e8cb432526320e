package search

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

// SearchByIdentifier godoc
// @Summary Find a lost device
// @Description Exact, case-insensitive match on IMEI (PHONE) or serial number (LAPTOP) among LOST posts. The newest match wins.
// @Tags posts
// @Produce json
// @Param type query string true "PHONE or LAPTOP"
// @Param value query string true "IMEI or serial number"
// @Success 200 {object} response.SuccessResponse{data=posts.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /posts/search [get]
func (h *Handler) SearchByIdentifier(c *gin.Context) {
	deviceType, okType := c.GetQuery("type")
	value, okValue := c.GetQuery("value")
	if !okType || !okValue {
		response.BadRequest(c, "type and value query parameters are required", "MISSING_PARAMETER")
		return
	}

	post, err := h.service.ByIdentifier(c.Request.Context(), deviceType, value)
	if err != nil {
		response.FromError(c, err, "POST_NOT_FOUND")
		return
	}

	response.Success(c, post)
}
