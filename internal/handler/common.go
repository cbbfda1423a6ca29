package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"festivales/internal/auth"
	apperrors "festivales/internal/errors"
	"festivales/internal/model"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator with the objectid tag registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return model.IsValidID(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// respondError converts a service error into the JSON error body. The cause
// stays attached for the access log.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

// EstadoRequest changes the soft or lifecycle state of a record.
type EstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

func bindEstado(c echo.Context) (string, error) {
	var req EstadoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return "", err
	}
	return req.Estado, nil
}

// queryDate reads an optional date query parameter, either RFC 3339 or
// YYYY-MM-DD.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, respondError(apperrors.Validation("%s must be a date", name))
}

func queryEstado(c echo.Context) model.Estado {
	return model.Estado(c.QueryParam("estado"))
}

func claimsOf(c echo.Context) *auth.Claims {
	claims, _ := auth.ClaimsFromContext(c.Request().Context())
	return claims
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
