package errors

import "net/http"

// Code classifies an error for callers and for the dispatch boundary.
type Code string

// Error codes. Engines return these as typed values; the boundary decides
// how to render them.
const (
	CodeOK                   Code = "OK"
	CodeInvalidArgument      Code = "INVALID_ARGUMENT"
	CodeNotFound             Code = "NOT_FOUND"
	CodeAlreadyExists        Code = "ALREADY_EXISTS"
	CodeFailedPrecondition   Code = "FAILED_PRECONDITION"
	CodeCooldownActive       Code = "COOLDOWN_ACTIVE"
	CodeVersionConflict      Code = "VERSION_CONFLICT"
	CodeInsufficientResource Code = "INSUFFICIENT_RESOURCE"
	CodeInternal             Code = "INTERNAL"
	CodeUnavailable          Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the status the HTTP boundary responds with for this code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeFailedPrecondition, CodeVersionConflict:
		return http.StatusConflict
	case CodeCooldownActive:
		return http.StatusTooManyRequests
	case CodeInsufficientResource:
		return http.StatusPaymentRequired
	case CodeInternal:
		return http.StatusInternalServerError
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
