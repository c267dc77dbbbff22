package utils

import (
	"fmt"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is an error that already knows the HTTP status it maps to.
type AppError struct {
	Status  int
	Message string
	Details []FieldError
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return NewError(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return NewError(http.StatusConflict, message)
}

func ValidationError(details ...FieldError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Details: details,
	}
}
