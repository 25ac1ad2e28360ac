package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saferoute/saferoute-backend-go/internal/middleware"
	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

// UserHandler handles HTTP requests for user profiles and tokens
type UserHandler struct {
	service   *service.UserService
	jwtSecret string
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService, jwtSecret string) *UserHandler {
	return &UserHandler{service: service, jwtSecret: jwtSecret}
}

// IssueToken issues a client token for a user ID.
// POST /api/v1/auth/token
func (h *UserHandler) IssueToken(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user_id is required")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, req.UserID)
	if err != nil {
		response.InternalError(c, "Could not issue token")
		return
	}

	response.Success(c, gin.H{"token": token, "user_id": req.UserID})
}

// UpdateProfile updates the caller's profile.
// PUT /api/v1/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update models.UserProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.BadRequest(c, "Invalid profile: "+err.Error())
		return
	}

	// The token owner may only edit their own profile.
	if caller := c.GetString("user"); caller != "" && caller != update.UserID {
		response.Error(c, http.StatusForbidden, "Cannot edit another user's profile")
		return
	}

	profile, err := h.service.UpdateProfile(update)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}

// GetProfile retrieves a user profile.
// GET /api/v1/users/:id/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}
