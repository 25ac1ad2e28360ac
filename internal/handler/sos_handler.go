package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

// SOSHandler handles HTTP requests for emergency alerts
type SOSHandler struct {
	service *service.AlertService
}

// NewSOSHandler creates a new SOS handler
func NewSOSHandler(service *service.AlertService) *SOSHandler {
	return &SOSHandler{service: service}
}

// Trigger creates and broadcasts an emergency alert.
// POST /api/v1/sos
func (h *SOSHandler) Trigger(c *gin.Context) {
	var req models.SOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid SOS request: "+err.Error())
		return
	}

	alert, err := h.service.Trigger(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, alert)
}
