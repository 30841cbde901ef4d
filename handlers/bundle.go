// File: washbook/handlers/bundle.go
package handlers

import (
	"net/http"

	"washbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HandlerBundle groups the endpoint handlers the router registers.
type HandlerBundle struct {
	// Catalogue endpoints
	GetLocationsHandler gin.HandlerFunc
	GetServicesHandler  gin.HandlerFunc
	GetAddonsHandler    gin.HandlerFunc
	GetSlotsHandler     gin.HandlerFunc
	GetDatesHandler     gin.HandlerFunc
	QuoteHandler        gin.HandlerFunc

	// Location endpoints
	NearestLocationHandler   gin.HandlerFunc
	NearestLocationIPHandler gin.HandlerFunc

	// Booking endpoints
	StartSession  gin.HandlerFunc
	GetSession    gin.HandlerFunc
	UpdateSession gin.HandlerFunc
	NextStep      gin.HandlerFunc
	PrevStep      gin.HandlerFunc
	JumpToStep    gin.HandlerFunc
	SubmitBooking gin.HandlerFunc
	CancelSession gin.HandlerFunc

	// Operational endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(cat *CatalogueHandler, loc *LocationHandler, book *BookingHandler, gatherer prometheus.Gatherer) *HandlerBundle {
	return &HandlerBundle{
		GetLocationsHandler: cat.GetLocations,
		GetServicesHandler:  cat.GetServices,
		GetAddonsHandler:    cat.GetAddons,
		GetSlotsHandler:     cat.GetSlots,
		GetDatesHandler:     cat.GetDates,
		QuoteHandler:        cat.Quote,

		NearestLocationHandler:   loc.NearestFromClient,
		NearestLocationIPHandler: loc.NearestFromIP,

		StartSession:  book.StartSession,
		GetSession:    book.GetSession,
		UpdateSession: book.UpdateSession,
		NextStep:      book.NextStep,
		PrevStep:      book.PrevStep,
		JumpToStep:    book.JumpToStep,
		SubmitBooking: book.SubmitBooking,
		CancelSession: book.CancelSession,

		HealthHandler:  Health(gatherer),
		MetricsHandler: gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

// Health reports the last dependency health snapshot and submission totals.
func Health(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.CheckedAt.IsZero() && !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		body := gin.H{"status": state, "message": "Hi, I'm washbook", "dependencies": status}
		if counts, err := utils.SubmissionCounts(gatherer); err == nil {
			body["submissions"] = counts
		} else {
			getLogger(c).Warn("Failed to gather submission counts", zap.Error(err))
		}
		c.JSON(code, body)
	}
}
