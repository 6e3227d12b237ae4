package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// SystemErrorMessage is what callers see when the cause must stay internal.
const SystemErrorMessage = "internal server error"

// AppError wraps an underlying error with an HTTP status and a message safe
// to show to a storefront visitor.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(err error, status int, message string) *AppError {
	return &AppError{Err: err, Status: status, Message: message}
}

func NotFound(err error, message string) *AppError {
	return New(err, http.StatusNotFound, message)
}

func BadRequest(message string) *AppError {
	return New(nil, http.StatusBadRequest, message)
}

func Conflict(err error, message string) *AppError {
	return New(err, http.StatusConflict, message)
}

// Upstream marks a failure of a collaborator (database, cart service).
func Upstream(err error, message string) *AppError {
	return New(err, http.StatusBadGateway, message)
}

// StatusOf returns the HTTP status and visitor-facing message for err.
// Errors that are not AppErrors map to 500 with SystemErrorMessage.
func StatusOf(err error) (int, string) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status, ae.Message
	}
	return http.StatusInternalServerError, SystemErrorMessage
}
