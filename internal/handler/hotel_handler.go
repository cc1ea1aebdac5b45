package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tripcraft/internal/errors"
	"tripcraft/internal/service"
)

// HotelHandler proxies hotel searches.
type HotelHandler struct {
	hotelService service.HotelService
}

// NewHotelHandler creates a new hotel handler.
func NewHotelHandler(hotelService service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// Search godoc
// @Summary Search hotel offers for a stay
// @Tags hotels
// @Produce json
// @Param city query string true "IATA city code"
// @Param checkInDate query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOutDate query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 405 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /hotels [get]
func (h *HotelHandler) Search(c echo.Context) error {
	city := c.QueryParam("city")
	checkIn := c.QueryParam("checkInDate")
	checkOut := c.QueryParam("checkOutDate")
	if city == "" || checkIn == "" || checkOut == "" {
		return missingHotelParameters()
	}

	offers, err := h.hotelService.Search(c.Request().Context(), city, checkIn, checkOut)
	if err != nil {
		if stderrors.Is(err, errors.ErrBadRequest) {
			return missingHotelParameters()
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Error fetching hotels",
			Code:    "HOTEL_SEARCH_FAILED",
		})
	}

	return c.JSONBlob(http.StatusOK, offers)
}

func missingHotelParameters() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Message: "Missing required parameters",
		Code:    "MISSING_PARAMETERS",
	})
}
