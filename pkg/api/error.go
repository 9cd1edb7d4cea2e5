package api

import "net/http"

// Error represents an error that occurred while handling a request.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// FieldError carries per-field validation detail alongside the usual message,
// so prediction endpoints can report every bad field in one round trip.
type FieldError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Common errors
var (
	BadRequestError     = &Error{StatusCode: http.StatusBadRequest}
	NotFoundError       = &Error{StatusCode: http.StatusNotFound}
	InternalServerError = &Error{StatusCode: http.StatusInternalServerError}
)

func NewBadRequestError(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Message: message}
}

func NewInternalServerError(message string) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Message: message}
}

func NewUnprocessableEntityError(message string, fields map[string]string) *FieldError {
	return &FieldError{StatusCode: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}
