package handler

import (
	"context"
	"errors"
	"net/http"

	"gasp-api/internal/geocoder"
	"gasp-api/internal/models"
	"gasp-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LocationHandler handles the address resolution endpoints
type LocationHandler struct {
	service LocationService
}

// LocationService interface for dependency injection
type LocationService interface {
	AddLocation(context.Context, models.LocationQuery) (*models.GaspLocation, service.Verdict, error)
	CheckLocation(context.Context, models.LocationQuery) (*models.GeocodeResult, service.Verdict, error)
	LatLng(context.Context, models.LocationQuery) (*models.Location, service.Verdict, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// AddLocation handles POST /locations/new requests
//
//	@Summary		Resolve and store a location
//	@Description	Resolves addressString and stores it under name when the provider returns exactly one match.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			query	body		models.LocationQuery	true	"Location query"
//	@Success		200		{object}	models.GaspLocation
//	@Success		204		"No match or more than one match"
//	@Failure		500		"Provider, persistence or unexpected failure"
//	@Router			/locations/new [post]
func (h *LocationHandler) AddLocation(c *gin.Context) {
	var q models.LocationQuery
	if !bindQuery(c, &q) {
		return
	}
	loc, verdict, err := h.service.AddLocation(c.Request.Context(), q)
	respond(c, "add location", loc, verdict, err)
}

// CheckLocation handles POST /locations/lookup requests
//
//	@Summary		Resolve a location
//	@Description	Returns the provider's full result when addressString resolves to exactly one match. Nothing is stored.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			query	body		models.LocationQuery	true	"Location query"
//	@Success		200		{object}	models.GeocodeResult
//	@Success		204		"No match or more than one match"
//	@Failure		500		"Provider or unexpected failure"
//	@Router			/locations/lookup [post]
func (h *LocationHandler) CheckLocation(c *gin.Context) {
	var q models.LocationQuery
	if !bindQuery(c, &q) {
		return
	}
	result, verdict, err := h.service.CheckLocation(c.Request.Context(), q)
	respond(c, "check location", result, verdict, err)
}

// LatLng handles POST /locations/latlng requests
//
//	@Summary		Resolve coordinates
//	@Description	Returns only lat/lng when addressString resolves to exactly one match. Nothing is stored.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			query	body		models.LocationQuery	true	"Location query"
//	@Success		200		{object}	models.Location
//	@Success		204		"No match or more than one match"
//	@Failure		500		"Provider or unexpected failure"
//	@Router			/locations/latlng [post]
func (h *LocationHandler) LatLng(c *gin.Context) {
	var q models.LocationQuery
	if !bindQuery(c, &q) {
		return
	}
	loc, verdict, err := h.service.LatLng(c.Request.Context(), q)
	respond(c, "get lat lng", loc, verdict, err)
}

// bindQuery decodes the request body. An undecodable body is treated like any other unexpected failure.
func bindQuery(c *gin.Context, q *models.LocationQuery) bool {
	if err := c.ShouldBindJSON(q); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("cannot decode location query")
		c.AbortWithStatus(http.StatusInternalServerError)
		return false
	}
	return true
}

// respond writes 200 with body for a single match, 204 for no match or an
// ambiguous one, and 500 with no body for any failure.
func respond[T any](c *gin.Context, op string, body *T, verdict service.Verdict, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	if err != nil {
		var provErr *geocoder.ProviderError
		if errors.As(err, &provErr) {
			logger.Error().Str("op", op).Str("reason", string(provErr.Status)).Msg("geocoding provider failure")
		} else {
			logger.Error().Str("op", op).Err(err).Msg("request failed")
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if verdict != service.Matched || body == nil {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, body)
}
