package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"gasp-api/internal/models"
	"gasp-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NearestHandler handles lookups of stored locations by coordinates
type NearestHandler struct {
	service NearestService
}

// NearestService interface for dependency injection
type NearestService interface {
	Nearest(context.Context, float64, float64) (*models.GaspLocation, error)
}

// NewNearestHandler creates a new nearest location handler
func NewNearestHandler(svc NearestService) *NearestHandler {
	return &NearestHandler{service: svc}
}

// Nearest handles GET /locations/nearest requests
//
//	@Summary		Nearest stored location
//	@Description	Returns the stored location closest to lat/lng within 10km.
//	@Tags			locations
//	@Produce		json
//	@Param			lat	query		number	true	"Latitude"
//	@Param			lng	query		number	true	"Longitude"
//	@Success		200	{object}	models.GaspLocation
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/locations/nearest [get]
func (h *NearestHandler) Nearest(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")

	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lng'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	location, err := h.service.Nearest(c.Request.Context(), lat, lng)
	if errors.Is(err, service.ErrInvalidCoordinates) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("nearest location lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, location)
}
