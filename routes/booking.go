package routes

import (
	"washbook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", hb.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.GetSession)
		bookingGroup.PATCH("/session/:sessionID", hb.UpdateSession)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelSession)
		bookingGroup.POST("/session/:sessionID/next", hb.NextStep)
		bookingGroup.POST("/session/:sessionID/prev", hb.PrevStep)
		bookingGroup.POST("/session/:sessionID/jump", hb.JumpToStep)
		bookingGroup.POST("/session/:sessionID/submit", hb.SubmitBooking)
	}
}
