package handlers

import (
	"net/http"
	"strconv"
	"time"

	"washbook/models"
	"washbook/services/booking"
	"washbook/services/catalogue"
	"washbook/utils"

	"github.com/gin-gonic/gin"
)

const maxBookingDays = 60

// CatalogueHandler serves the read-only catalogue, slots, dates and price quotes.
type CatalogueHandler struct {
	Catalogue   *catalogue.Catalogue
	Rules       booking.Rules
	HorizonDays int
}

func (h *CatalogueHandler) GetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": h.Catalogue.Locations})
}

func (h *CatalogueHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Catalogue.Services})
}

func (h *CatalogueHandler) GetAddons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"addons": h.Catalogue.Addons})
}

// GetSlots lists the start times of a service on a date at a location.
func (h *CatalogueHandler) GetSlots(c *gin.Context) {
	svc, ok := h.Catalogue.ServiceByID(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Service not found", c.Param("id"))
		return
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or invalid date", "date must be YYYY-MM-DD")
		return
	}
	loc, ok := h.Catalogue.LocationByID(c.Query("location"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Missing or unknown location", c.Query("location"))
		return
	}

	slots := booking.GenerateSlots(svc, date, loc.ID, h.Rules.Window, h.Rules.Checker())
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"service":  svc.ID,
		"location": loc.ID,
		"date":     date,
		"slots":    slots,
	})
}

// GetDates lists the date picker entries starting today.
func (h *CatalogueHandler) GetDates(c *gin.Context) {
	days := h.HorizonDays
	if q := c.Query("days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > maxBookingDays {
			utils.JSONError(c, http.StatusBadRequest, "Invalid days", "days must be between 1 and 60")
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, gin.H{"dates": booking.UpcomingDates(h.Rules.Now(), days, h.Rules.Zone())})
}

// Quote prices a service with optional extras, membership, location and vehicle size.
func (h *CatalogueHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	quote, err := h.Rules.Pricing.QuoteRequest(h.Catalogue, req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
