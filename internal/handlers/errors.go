package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"teslo/internal/apperrors"
	"teslo/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindUnauthorized, apperrors.KindInvalidToken:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func errorBody(status int, message string) fiber.Map {
	return fiber.Map{
		"statusCode": status,
		"message":    message,
		"error":      utils.StatusMessage(status),
	}
}

// ErrorHandler renders every error that reaches Fiber: service errors by kind,
// Fiber errors by their code and anything else as an internal failure.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			status := statusOf(appErr.Kind)
			if status == fiber.StatusInternalServerError {
				log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", appErr.Err)
			}
			return c.Status(status).JSON(errorBody(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorBody(fiberErr.Code, fiberErr.Message))
		}

		log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody(fiber.StatusInternalServerError, apperrors.InternalMessage))
	}
}

// newValidator reports field names the way clients send them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// validationFailed renders validator errors as a field to message map.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badRequest(c, "Validation failed", err)
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	body := errorBody(fiber.StatusBadRequest, "Validation failed")
	body["errors"] = errorMessages
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := errorBody(fiber.StatusBadRequest, message)
	if err != nil {
		body["details"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// bind parses the JSON body into dst and validates it. A false return means
// the 400 response has already been written.
func bind(c *fiber.Ctx, v *validator.Validate, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badRequest(c, "Invalid request body", err)
	}
	if err := v.Struct(dst); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
