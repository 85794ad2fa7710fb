package handler

import (
	"errors"
	"net/http"

	"account_service/internal/auth/domain"
	"account_service/internal/auth/usecase"
	"account_service/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	usecase usecase.AuthUsecase
}

func NewAuthHandler(u usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		usecase: u,
	}
}

func (h *AuthHandler) Bind(e *echo.Group) {
	e.POST("/register", h.RegisterHandler)
	e.POST("/login", h.LoginHandler)
}

// BindActivation mounts the activation deep link at the root so emailed URLs
// keep the /activate/{id}/{token} shape.
func (h *AuthHandler) BindActivation(e *echo.Echo) {
	e.GET("/activate/:id/:token", h.ActivateHandler)
}

func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	output, err := h.usecase.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken),
			errors.Is(err, domain.ErrInvalidPasswordFormat),
			errors.Is(err, domain.ErrInvalidEmailFormat),
			errors.Is(err, domain.ErrInvalidGender),
			errors.Is(err, domain.ErrInvalidNameLength):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			logger.Error("Unexpected error in RegisterHandler:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}

	// Never echo the account back; the client only learns that a
	// confirmation mail is on its way.
	return c.JSON(http.StatusCreated, map[string]string{"message": output.Message})
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	output, err := h.usecase.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials),
			errors.Is(err, domain.ErrAccountInactive):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unable to authenticate with provided credentials"})
		case errors.Is(err, domain.ErrTooManyLoginAttempts):
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many login attempts, please try again later"})
		default:
			logger.Error("Unexpected error in LoginHandler:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}

	return c.JSON(http.StatusOK, output)
}

func (h *AuthHandler) ActivateHandler(c echo.Context) error {
	accountID := c.Param("id")
	activationToken := c.Param("token")

	ctx := c.Request().Context()
	output, err := h.usecase.Activate(ctx, accountID, activationToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyActive):
			return c.JSON(http.StatusAlreadyReported, map[string]string{"message": output.Message})
		case errors.Is(err, domain.ErrInvalidActivation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Activation link is invalid!"})
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Account not found"})
		default:
			logger.Error("Unexpected error in ActivateHandler:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}

	return c.JSON(http.StatusAccepted, map[string]string{"message": output.Message})
}
