package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/config"
	"github.com/saferoute/saferoute-backend-go/internal/handler"
	"github.com/saferoute/saferoute-backend-go/internal/middleware"
	"github.com/saferoute/saferoute-backend-go/internal/realtime"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Route     *handler.RouteHandler
	Geo       *handler.GeoHandler
	SOS       *handler.SOSHandler
	Companion *handler.CompanionHandler
	Detection *handler.DetectionHandler
	User      *handler.UserHandler
	Gateway   *realtime.Gateway
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(corsMiddleware(cfg.CORSOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "SafeRoute API is running",
		})
	})

	// Realtime presence and alert channel
	r.GET("/ws", h.Gateway.Handle)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "SafeRoute API v1.0",
				"status":  "operational",
			})
		})

		// Routing and map data
		api.POST("/route", h.Route.SafestRoute)
		api.GET("/geocode", h.Geo.Geocode)
		api.GET("/cctv", h.Geo.CCTV)
		api.GET("/infrastructure", h.Geo.Infrastructure)
		api.GET("/traffic", h.Geo.Traffic)

		// Shared walks
		companions := api.Group("/companions")
		{
			companions.POST("", h.Companion.Create)
			companions.GET("", h.Companion.List)
			companions.POST("/request", h.Companion.SendRequest)
		}

		// Emergency alerts
		api.POST("/sos", h.SOS.Trigger)

		// Crowd-verified camera detections
		detections := api.Group("/detections")
		{
			detections.POST("", h.Detection.Ingest)
			detections.GET("/:id", h.Detection.Get)
			detections.POST("/:id/confirm", h.Detection.Confirm)
		}

		// Users
		api.POST("/auth/token", h.User.IssueToken)
		api.GET("/users/:id/profile", h.User.GetProfile)
		api.PUT("/users/profile", middleware.Auth(cfg.JWTSecret), h.User.UpdateProfile)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
