package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/provider"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for safety-scored routing
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// SafestRoute evaluates route alternatives and returns the safest one.
// POST /api/v1/route
func (h *RouteHandler) SafestRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid route request: "+err.Error())
		return
	}

	result, err := h.service.SafestRoute(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNoRoute):
			response.BadRequest(c, "No routes found")
		case errors.Is(err, provider.ErrRouteUnavailable):
			response.ServiceUnavailable(c, "Routing service unavailable")
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.Success(c, result)
}
