package errors_utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ForbiddenOperationError is returned by every authorization rule on a denied
// mutation. Message is shown to the client as is.
type ForbiddenOperationError struct {
	Message string
}

func (e *ForbiddenOperationError) Error() string {
	return e.Message
}

// InvalidTokenError means the presented access or refresh token cannot be
// trusted and the client has to sign in again.
type InvalidTokenError struct {
	Message string
}

func (e *InvalidTokenError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewForbiddenOperation(message string) error {
	return &ForbiddenOperationError{Message: message}
}

func NewInvalidToken(message string) error {
	return &InvalidTokenError{Message: message}
}

func NewNotFound(message string) error {
	return &NotFoundError{Message: message}
}

func IsForbiddenOperation(err error) bool {
	var target *ForbiddenOperationError
	return errors.As(err, &target)
}

func IsInvalidToken(err error) bool {
	var target *InvalidTokenError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// StatusCode maps a service error to the HTTP status the controllers answer with.
func StatusCode(err error) int {
	switch {
	case IsForbiddenOperation(err):
		return http.StatusForbidden
	case IsInvalidToken(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func RespondWithError(ctx *gin.Context, err error) {
	ctx.JSON(StatusCode(err), gin.H{"error": err.Error()})
}
