package handler

import (
	"errors"
	"net/http"

	"account_service/internal/accounts/domain"
	"account_service/internal/accounts/usecase"
	"account_service/internal/middleware"
	"account_service/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	usecase usecase.AccountUsecase
}

func NewAccountHandler(u usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		usecase: u,
	}
}

// Bind mounts the self-service routes; the group must already carry the
// session middleware.
func (h *AccountHandler) Bind(e *echo.Group) {
	e.GET("/me", h.GetProfile)
	e.PUT("/me", h.ReplaceProfile)
	e.PATCH("/me", h.UpdateProfile)
	e.DELETE("/me", h.DeactivateSelf)
	e.PUT("/me/password", h.ChangePassword)
	e.POST("/me/image", h.UploadImage)
}

// BindAdmin mounts the privileged management routes; the group must carry
// both the session middleware and the admin gate.
func (h *AccountHandler) BindAdmin(e *echo.Group) {
	e.GET("", h.ListAccounts)
	e.GET("/:id", h.GetAccount)
	e.PUT("/:id", h.ReplaceAccount)
	e.PATCH("/:id", h.UpdateAccount)
	e.DELETE("/:id", h.DeactivateAccount)
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	output, err := h.usecase.GetProfile(ctx, accountID)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	return h.update(c, accountID)
}

// ReplaceProfile is the PUT path: every profile field must be present, as
// opposed to the PATCH path which touches only what the payload carries.
func (h *AccountHandler) ReplaceProfile(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	return h.replace(c, accountID)
}

func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req usecase.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.usecase.ChangePassword(ctx, accountID, req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCurrentPassword),
			errors.Is(err, domain.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return h.mapError(c, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AccountHandler) DeactivateSelf(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	if err := h.usecase.Deactivate(ctx, accountID); err != nil {
		return h.mapError(c, err)
	}

	// The cached session would otherwise keep answering for up to the cache
	// TTL after the account went inactive.
	if token, ok := c.Get("session_token").(string); ok && token != "" {
		middleware.InvalidateSessionCache(token)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) UploadImage(c echo.Context) error {
	accountID, ok := c.Get("user_id").(string)
	if !ok || accountID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}

	ctx := c.Request().Context()
	imageURL, err := h.usecase.UploadImage(ctx, accountID, fileHeader)
	if err != nil {
		if errors.Is(err, domain.ErrStorageNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"image": imageURL})
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	ctx := c.Request().Context()
	accounts, err := h.usecase.ListAccounts(ctx)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	ctx := c.Request().Context()
	output, err := h.usecase.GetProfile(ctx, c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	return h.update(c, c.Param("id"))
}

func (h *AccountHandler) ReplaceAccount(c echo.Context) error {
	return h.replace(c, c.Param("id"))
}

func (h *AccountHandler) DeactivateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	accountID := c.Param("id")
	if err := h.usecase.Deactivate(ctx, accountID); err != nil {
		return h.mapError(c, err)
	}

	// The admin does not hold the target's token, so the eviction goes
	// through the account index.
	middleware.InvalidateAccountSessions(accountID)

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) update(c echo.Context, accountID string) error {
	var req usecase.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one field must be provided"})
	}

	return h.applyUpdate(c, accountID, req)
}

func (h *AccountHandler) replace(c echo.Context, accountID string) error {
	var req usecase.ReplaceAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return h.applyUpdate(c, accountID, req.AsUpdate())
}

func (h *AccountHandler) applyUpdate(c echo.Context, accountID string, req usecase.UpdateAccountRequest) error {
	ctx := c.Request().Context()
	output, err := h.usecase.UpdateProfile(ctx, accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken),
			errors.Is(err, domain.ErrInvalidEmail):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return h.mapError(c, err)
		}
	}

	return c.JSON(http.StatusOK, output)
}

func (h *AccountHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAccountID):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		logger.Error("Unexpected error in account handler:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
