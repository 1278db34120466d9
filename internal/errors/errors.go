// Package errors defines the error contract between storage, service and
// handler layers. The default at the handler boundary is 500; anything with
// a different status code travels as *ErrorWithStatusCode.
package errors

import (
	"errors"
	"net/http"
)

type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NewValidation(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func NewUnauthenticated(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

func NewPermissionDenied(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func NewNotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func NewConflict(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func hasStatus(err error, code int) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == code
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func IsPermissionDenied(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}
