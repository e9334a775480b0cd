package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL_ERROR"
	CodeDependency Code = "DEPENDENCY_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

// MetadataFor resolves how a code surfaces over HTTP. Unknown codes are
// treated as internal faults.
func MetadataFor(code Code) Metadata {
	switch code {
	case CodeValidation:
		return Metadata{
			HTTPStatus:     http.StatusBadRequest,
			PublicMessage:  "validation failed",
			DetailsAllowed: true,
		}
	case CodeNotFound:
		return Metadata{
			HTTPStatus:    http.StatusNotFound,
			PublicMessage: "resource not found",
		}
	case CodeDependency:
		return Metadata{
			HTTPStatus:     http.StatusServiceUnavailable,
			Retryable:      true,
			PublicMessage:  "dependency unavailable",
			DetailsAllowed: true,
		}
	default:
		return Metadata{
			HTTPStatus:    http.StatusInternalServerError,
			Retryable:     true,
			PublicMessage: "internal server error",
		}
	}
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
