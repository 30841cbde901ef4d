package handlers

import (
	"errors"
	"io"
	"net/http"

	"washbook/middleware"
	"washbook/models"
	"washbook/services/location"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationHandler finds the branch nearest to the caller.
type LocationHandler struct {
	Resolver location.LocationResolver
	Locator  *location.Locator
	IPGeo    *location.IPGeolocator
	Options  location.GeoOptions
}

type nearestRequest struct {
	Coordinates      *models.Coordinates `json:"coordinates"`
	GeolocationError *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"geolocationError"`
}

type nearestResponse struct {
	models.Resolution
	Ranked []models.RankedLocation `json:"ranked,omitempty"`
}

// NearestFromClient resolves coordinates (or a failure) reported by the browser.
func (h *LocationHandler) NearestFromClient(c *gin.Context) {
	var req nearestRequest
	// An empty body resolves to the default location.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	provider := location.StaticProvider{Coordinates: req.Coordinates}
	if req.GeolocationError != nil {
		provider.ErrorCode = req.GeolocationError.Code
		provider.Message = req.GeolocationError.Message
		if provider.ErrorCode == 0 {
			provider.ErrorCode = location.CodePositionUnavailable
		}
	}

	res, err := h.Locator.Locate(c.Request.Context(), provider, h.Options)
	if err != nil {
		getLogger(c).Error("Failed to resolve nearest location", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve location", err.Error())
		return
	}

	out := nearestResponse{Resolution: res}
	if !res.Fallback && req.Coordinates != nil {
		out.Ranked = h.Resolver.Rank(*req.Coordinates)
	}
	c.JSON(http.StatusOK, out)
}

// NearestFromIP approximates the caller's position from their IP address.
func (h *LocationHandler) NearestFromIP(c *gin.Context) {
	ip := middleware.ClientIP(c)
	res, err := h.Locator.Locate(c.Request.Context(), h.IPGeo.Provider(ip), h.Options)
	if err != nil {
		getLogger(c).Error("Failed to resolve nearest location", zap.String("ip", ip), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to resolve location", err.Error())
		return
	}
	c.JSON(http.StatusOK, nearestResponse{Resolution: res})
}
