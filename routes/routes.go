package routes

import (
	"time"

	"washbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogueRoutes registers read-only catalogue, slot, date and pricing endpoints.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/catalogue/locations", hb.GetLocationsHandler)
		api.GET("/catalogue/services", hb.GetServicesHandler)
		api.GET("/catalogue/addons", hb.GetAddonsHandler)
		api.GET("/services/:id/slots", hb.GetSlotsHandler)
		api.GET("/booking/dates", hb.GetDatesHandler)
		api.POST("/pricing/quote", hb.QuoteHandler)
	}
}

// RegisterLocationRoutes registers nearest-location endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.POST("/nearest", hb.NearestLocationHandler)
		api.GET("/nearest", hb.NearestLocationIPHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", hb.MetricsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
