package router

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tripcraft/internal/auth"
	"tripcraft/internal/config"
	"tripcraft/internal/handler"
	"tripcraft/internal/logging"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Itinerary *handler.ItineraryHandler
	Trip      *handler.TripHandler
	Hotel     *handler.HotelHandler
	Health    *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, logger *slog.Logger, jwtService *auth.JWTService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", h.Health.Live)
	e.GET("/readyz", h.Health.Ready)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Trip planning routes
	e.POST("/generate-itinerary", h.Trip.GenerateItinerary)
	e.POST("/get-city-image", h.Trip.CityImage)
	e.POST("/get-weather", h.Trip.Weather)
	e.GET("/hotels", h.Hotel.Search)

	api := e.Group("/api")

	// Public routes
	api.POST("/signup", h.Auth.Signup)
	api.POST("/login", h.Auth.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", auth.Middleware(jwtService))
	secured.POST("/save-itinerary", h.Itinerary.Save)
	secured.GET("/saved-itineraries", h.Itinerary.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by every handler.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
