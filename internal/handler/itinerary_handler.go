package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tripcraft/internal/auth"
	"tripcraft/internal/errors"
	"tripcraft/internal/model"
	"tripcraft/internal/service"
)

const missingItineraryFields = "Missing required fields. City, arrival, departure, and itinerary are required."

// ItineraryHandler handles saved itinerary endpoints.
type ItineraryHandler struct {
	itineraryService service.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler.
func NewItineraryHandler(itineraryService service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// SaveItineraryRequest represents an itinerary to keep.
type SaveItineraryRequest struct {
	City        string           `json:"city" validate:"required"`
	Arrival     string           `json:"arrival" validate:"required"`
	Departure   string           `json:"departure" validate:"required"`
	Itinerary   model.StringList `json:"itinerary" validate:"required,min=1" swaggertype:"array,string"`
	Preferences model.StringList `json:"preferences" swaggertype:"array,string"`
}

// MessageResponse carries a human readable status.
type MessageResponse struct {
	Message string `json:"message"`
}

// Save godoc
// @Summary Save an itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveItineraryRequest true "Itinerary"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/save-itinerary [post]
func (h *ItineraryHandler) Save(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Message: "Invalid token",
			Code:    "TOKEN_INVALID",
		})
	}

	var req SaveItineraryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid request body",
			Code:    "INVALID_BODY",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: missingItineraryFields,
			Code:    "MISSING_FIELDS",
		})
	}

	_, err := h.itineraryService.Save(c.Request().Context(), userID, service.SaveItineraryInput{
		City:        req.City,
		Arrival:     req.Arrival,
		Departure:   req.Departure,
		Itinerary:   req.Itinerary,
		Preferences: req.Preferences,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrBadRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Message: missingItineraryFields,
				Code:    "MISSING_FIELDS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Failed to save itinerary",
			Code:    "SAVE_FAILED",
		})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Itinerary saved successfully"})
}

// List godoc
// @Summary List saved itineraries, newest first
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.SavedItinerary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/saved-itineraries [get]
func (h *ItineraryHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Message: "Invalid token",
			Code:    "TOKEN_INVALID",
		})
	}

	itineraries, err := h.itineraryService.List(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Failed to fetch saved itineraries",
			Code:    "FETCH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, itineraries)
}
