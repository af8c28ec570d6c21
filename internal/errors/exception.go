package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindConflict             Kind = "conflict"
	KindExternalVerification Kind = "external_verification"
	KindInternal             Kind = "internal"
)

// statusVerificationFailed is what wallet clients expect when a
// payment is rejected.
const statusVerificationFailed = http.StatusLengthRequired

type Exception struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

func (e *Exception) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.cause
}

// Is matches exceptions by code so wrapped copies still compare equal to
// their sentinel.
func (e *Exception) Is(target error) bool {
	var t *Exception
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func newException(kind Kind, code, message string) *Exception {
	return &Exception{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a sentinel without losing its kind or code.
func Wrap(sentinel *Exception, cause error) error {
	return &Exception{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

// Validation builds a one-off validation failure for malformed input.
func Validation(message string) error {
	return &Exception{Kind: KindValidation, Code: "invalid_request", Message: message}
}

// Internal wraps an unexpected failure. Exceptions pass through untouched.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return err
	}
	return &Exception{Kind: KindInternal, Code: "internal", Message: "internal error", cause: err}
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func CodeOf(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "internal"
}

func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExternalVerification:
		return statusVerificationFailed
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal causes from callers.
func PublicMessage(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "something went wrong"
}
