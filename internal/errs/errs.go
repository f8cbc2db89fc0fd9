// Package errs defines the error taxonomy shared by every handler.
//
// An *Error carries the transport status it should surface with. Plain Go
// errors carry none and are reported as 500 with their own message, which is
// how domain failures such as "Category not found!" reach the client.
package errs

import (
	"errors"
	"net/http"
)

// ServerErrorTryAgain is the default failure text of every envelope.
const ServerErrorTryAgain = "Something went wrong! Please try again later."

// Codes surfaced as error_code.
const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeValidation    = "VALIDATION"
	CodeUnknownAction = "UNKNOWN_ACTION"
)

// Error is an error with an explicit transport status.
type Error struct {
	Status  int
	Message string
	// Code is an optional machine readable code surfaced as error_code.
	Code string
	// Cause is logged but never shown to the client.
	Cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Unauthorized is returned by the credential verifier on any failure.
func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized", Code: CodeUnauthorized}
}

// InvalidRequest wraps a validation complaint.
func InvalidRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg, Code: CodeValidation}
}

// ServerError is the generic 500.
func ServerError() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: ServerErrorTryAgain}
}

// Internal hides an infrastructure failure behind the generic 500.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: ServerErrorTryAgain, Cause: cause}
}

// Detail is the text to log for err: the hidden cause when there is one.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// WithCode returns a copy of e carrying code.
func (e *Error) WithCode(code string) *Error {
	c := *e
	c.Code = code
	return &c
}

// StatusOf reports the status err should be surfaced with. Errors without
// an explicit status map to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status > 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user facing text for err, falling back to the
// generic server message for empty errors.
func MessageOf(err error) string {
	if err == nil || err.Error() == "" {
		return ServerErrorTryAgain
	}
	return err.Error()
}

// CodeOf returns the error_code of err, if any.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
