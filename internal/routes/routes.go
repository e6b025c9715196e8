package routes

import (
	"net/http"

	"trailbook_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Hike.RegisterRoutes(api)
		appHandlers.Booking.RegisterRoutes(api)
		appHandlers.Review.RegisterRoutes(api)
		appHandlers.User.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
	}
}
