package pkgerror

import (
	"errors"
	"net/http"
)

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeRateLimited
	CodeUnavailable
)

// Business is an error the caller can act on: it carries a stable code and a
// message safe to return to the client.
type Business struct {
	message string
	code    Code
}

func NewBusiness(message string, code Code) *Business {
	return &Business{message: message, code: code}
}

func (e *Business) Error() string { return e.message }

func (e *Business) Code() Code { return e.code }

// HTTPStatus maps an error to the status the HTTP layer should respond with.
// Non-business errors are treated as internal.
func HTTPStatus(err error) int {
	var business *Business
	if !errors.As(err, &business) {
		return http.StatusInternalServerError
	}
	switch business.Code() {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error. Internal details are
// collapsed so they never leak through a response payload.
func Message(err error) string {
	var business *Business
	if errors.As(err, &business) {
		return business.Error()
	}
	return "internal server error"
}
