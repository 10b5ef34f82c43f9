package utils

import "net/http"

// APIError carries an HTTP status alongside a caller-facing message. Services
// return these; handlers translate them with WriteError.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"detail"`
}

func (e *APIError) Error() string {
	return e.Message
}

func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: message}
}

func Internal(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}
