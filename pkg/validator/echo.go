package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface and carries the custom registrations used across handlers.
type CustomValidator struct {
	validator *validator.Validate
}

func NewEchoValidator() *CustomValidator {
	v := validator.New()
	RegisterPasswordValidation(v)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
