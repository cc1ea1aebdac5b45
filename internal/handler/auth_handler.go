package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"tripcraft/internal/errors"
	"tripcraft/internal/service"
)

const (
	missingSignupFields = "Username, email and password are required"
	missingLoginFields  = "Username and password are required"
	fieldsTooLong       = "Username and email must be at most 255 characters, password at most 72"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid request body",
			Code:    "INVALID_BODY",
		})
	}

	if err := c.Validate(&req); err != nil {
		return invalidCredentialsInput(err, missingSignupFields)
	}

	token, _, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, errors.ErrBadRequest) {
			return invalidCredentialsInput(err, missingSignupFields)
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid request body",
			Code:    "INVALID_BODY",
		})
	}

	if err := c.Validate(&req); err != nil {
		return invalidCredentialsInput(err, missingLoginFields)
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Message: "Invalid credentials",
				Code:    "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Server error",
			Code:    "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// invalidCredentialsInput maps a validation failure to a fixed message.
// Field names and rule tags never reach the caller.
func invalidCredentialsInput(err error, missing string) error {
	message := missing
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				message = fieldsTooLong
				break
			}
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}
