package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tripcraft/internal/errors"
	"tripcraft/internal/model"
	"tripcraft/internal/service"
)

// TripHandler serves itinerary generation, city images and weather.
type TripHandler struct {
	generation service.GenerationService
	enrichment service.EnrichmentService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(generation service.GenerationService, enrichment service.EnrichmentService) *TripHandler {
	return &TripHandler{generation: generation, enrichment: enrichment}
}

// GenerateItineraryRequest describes the trip to plan.
type GenerateItineraryRequest struct {
	City        string           `json:"city" validate:"required"`
	Arrival     string           `json:"arrival"`
	Departure   string           `json:"departure"`
	Preferences model.StringList `json:"preferences" swaggertype:"array,string"`
}

// GenerateItineraryResponse holds the generated plan, one line per entry.
type GenerateItineraryResponse struct {
	Itinerary []string `json:"itinerary"`
}

// CityRequest names a city.
type CityRequest struct {
	City string `json:"city" validate:"required"`
}

// WeatherResponse holds the midday forecast per date.
type WeatherResponse struct {
	Forecast []service.DailyForecast `json:"forecast"`
}

func upstreamError(status int, message, code string) error {
	return echo.NewHTTPError(status, errors.NewHTTPError(status, message, code).ToUpstreamResponse())
}

// GenerateItinerary godoc
// @Summary Generate an hour-by-hour itinerary
// @Tags trips
// @Accept json
// @Produce json
// @Param request body GenerateItineraryRequest true "Trip"
// @Success 200 {object} GenerateItineraryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate-itinerary [post]
func (h *TripHandler) GenerateItinerary(c echo.Context) error {
	var req GenerateItineraryRequest
	if err := c.Bind(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "City is required", "VALIDATION_ERROR")
	}

	lines, err := h.generation.Generate(c.Request().Context(), service.GenerateInput{
		City:        req.City,
		Arrival:     req.Arrival,
		Departure:   req.Departure,
		Preferences: req.Preferences,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrBadRequest) {
			return upstreamError(http.StatusBadRequest, "City is required", "VALIDATION_ERROR")
		}
		return upstreamError(http.StatusInternalServerError, "Error generating itinerary", "GENERATION_FAILED")
	}

	return c.JSON(http.StatusOK, GenerateItineraryResponse{Itinerary: lines})
}

// CityImage godoc
// @Summary Get a representative photo of a city
// @Tags trips
// @Accept json
// @Produce json
// @Param request body CityRequest true "City"
// @Success 200 {object} service.CityImage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /get-city-image [post]
func (h *TripHandler) CityImage(c echo.Context) error {
	var req CityRequest
	if err := c.Bind(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "City is required", "VALIDATION_ERROR")
	}

	image, err := h.enrichment.CityImage(c.Request().Context(), req.City)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return upstreamError(http.StatusNotFound, "City image not found", httpErr.Code)
		case http.StatusBadRequest:
			return upstreamError(http.StatusBadRequest, "City is required", httpErr.Code)
		default:
			return upstreamError(http.StatusInternalServerError, "Failed to fetch city image", httpErr.Code)
		}
	}

	return c.JSON(http.StatusOK, image)
}

// Weather godoc
// @Summary Get the midday forecast for the next days
// @Tags trips
// @Accept json
// @Produce json
// @Param request body CityRequest true "City"
// @Success 200 {object} WeatherResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /get-weather [post]
func (h *TripHandler) Weather(c echo.Context) error {
	var req CityRequest
	if err := c.Bind(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return upstreamError(http.StatusBadRequest, "City is required", "VALIDATION_ERROR")
	}

	forecast, err := h.enrichment.Weather(c.Request().Context(), req.City)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusBadRequest {
			return upstreamError(http.StatusBadRequest, "City is required", httpErr.Code)
		}
		return upstreamError(http.StatusInternalServerError, "Failed to fetch weather forecast", httpErr.Code)
	}

	return c.JSON(http.StatusOK, WeatherResponse{Forecast: forecast})
}
