package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used to classify failures from the persistence and auth layers.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a classified application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps a classified error to its response status code.
// Anything unclassified is treated as an internal failure.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeConflict:
			return fiber.StatusConflict
		case CodeValidation:
			return fiber.StatusBadRequest
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes the standard JSON error body for err. Internal
// details are never included in the response.
func RespondWithError(c *fiber.Ctx, err error) error {
	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		message = appErr.Message
	}
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{
		"error": message,
	})
}
