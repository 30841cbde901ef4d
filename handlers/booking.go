package handlers

import (
	"errors"
	"io"
	"net/http"

	"washbook/models"
	"washbook/services/booking"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard as session endpoints.
type BookingHandler struct {
	Service booking.BookingSessionService
}

func NewBookingHandler(svc booking.BookingSessionService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type sessionResponse struct {
	Session *models.BookingSession `json:"session"`
	Summary models.BookingSummary  `json:"summary"`
}

func (h *BookingHandler) respond(c *gin.Context, status int, session *models.BookingSession) {
	c.JSON(status, sessionResponse{Session: session, Summary: h.Service.Summary(session)})
}

// StartSession creates a booking session, preselecting the location nearest to the optional coordinates.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		Coordinates *models.Coordinates `json:"coordinates"`
	}
	// An empty body, chunked or not, starts at the default location.
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	session, err := h.Service.Start(c.Request.Context(), input.Coordinates)
	if err != nil {
		getLogger(c).Error("Failed to start booking session", zap.Error(err))
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, session)
}

func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusOK, session)
}

// UpdateSession applies a partial draft update.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	session, err := h.Service.Edit(c.Request.Context(), c.Param("sessionID"), patch)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusOK, session)
}

func (h *BookingHandler) NextStep(c *gin.Context) {
	session, err := h.Service.Next(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusOK, session)
}

func (h *BookingHandler) PrevStep(c *gin.Context) {
	session, err := h.Service.Prev(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusOK, session)
}

func (h *BookingHandler) JumpToStep(c *gin.Context) {
	var body struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or invalid step", err.Error())
		return
	}
	session, err := h.Service.JumpTo(c.Request.Context(), c.Param("sessionID"), models.Step(body.Step))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.respond(c, http.StatusOK, session)
}

// SubmitBooking places the booking held by the session.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	sessionID := c.Param("sessionID")
	session, err := h.Service.Submit(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Warn("Booking submission failed", zap.String("sessionId", sessionID), zap.Error(err))
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Booking confirmed",
		"confirmation": session.State.Confirmation,
		"session":      session,
	})
}

func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session cancelled"})
}
