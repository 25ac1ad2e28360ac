package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

// DetectionHandler handles HTTP requests for camera detections
type DetectionHandler struct {
	service *service.DetectionService
}

// NewDetectionHandler creates a new detection handler
func NewDetectionHandler(service *service.DetectionService) *DetectionHandler {
	return &DetectionHandler{service: service}
}

// Ingest stores a detection produced by the external inference service.
// POST /api/v1/detections
func (h *DetectionHandler) Ingest(c *gin.Context) {
	var create models.DetectionCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.BadRequest(c, "Invalid detection: "+err.Error())
		return
	}

	detection, err := h.service.Ingest(create)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"detection_id":    detection.ID,
		"detections":      detection.Detections,
		"detection_count": len(detection.Detections),
		"max_confidence":  detection.Confidence,
	})
}

// Confirm records a user confirmation for a detection.
// POST /api/v1/detections/:id/confirm
func (h *DetectionHandler) Confirm(c *gin.Context) {
	detection, err := h.service.Confirm(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Detection not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"detection_id":  detection.ID,
		"confirmations": detection.Confirmations,
		"verified":      detection.Verified,
	})
}

// Get retrieves a detection.
// GET /api/v1/detections/:id
func (h *DetectionHandler) Get(c *gin.Context) {
	detection, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Detection not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, detection)
}
