package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

// CompanionHandler handles HTTP requests for shared walks
type CompanionHandler struct {
	service *service.CompanionService
}

// NewCompanionHandler creates a new companion handler
func NewCompanionHandler(service *service.CompanionService) *CompanionHandler {
	return &CompanionHandler{service: service}
}

// Create registers a shared walk.
// POST /api/v1/companions
func (h *CompanionHandler) Create(c *gin.Context) {
	var create models.CompanionCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.BadRequest(c, "Invalid companion: "+err.Error())
		return
	}

	companion, err := h.service.Create(create)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, companion)
}

// List returns active companions.
// GET /api/v1/companions?user_id=
func (h *CompanionHandler) List(c *gin.Context) {
	companions, err := h.service.List(c.Query("user_id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, companions)
}

// SendRequest relays a pairing request to another user.
// POST /api/v1/companions/request
func (h *CompanionHandler) SendRequest(c *gin.Context) {
	var request models.CompanionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Invalid companion request: "+err.Error())
		return
	}

	outcome, err := h.service.SendRequest(request)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"status":   "sent",
		"delivery": outcome,
	})
}
