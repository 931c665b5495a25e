package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the session manager and the API services.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoSession           = errors.New("no active session")
	ErrMissingRefreshToken = errors.New("no refresh token available")
	ErrUnexpectedResponse  = errors.New("unexpected response from API")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrOAuthDenied         = errors.New("oauth provider reported an error")
)

const (
	genericFailureMessage = "Something went wrong. Please try again."
	networkFailureMessage = "Unable to reach SkillSwap. Check your connection and try again."
	authFailureMessage    = "Your session has expired. Please log in again."
)

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthorizationError is a 401 that could not be recovered by refreshing the
// access token.
type AuthorizationError struct {
	Path    string
	Message string
	Err     error
}

func (e *AuthorizationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(http.StatusUnauthorized)
	}
	if e.Err != nil {
		return fmt.Sprintf("authorization failed on %s: %s: %v", e.Path, msg, e.Err)
	}
	return fmt.Sprintf("authorization failed on %s: %s", e.Path, msg)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// ApplicationError is any other non-2xx response. Message carries the
// server-provided text when the payload had one.
type ApplicationError struct {
	Status  int
	Path    string
	Message string
	Body    []byte
}

func (e *ApplicationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d on %s: %s", e.Status, e.Path, msg)
}

// MalformedCallbackError means the OAuth callback was missing required
// parameters or could not be decoded.
type MalformedCallbackError struct {
	Reason string
	Err    error
}

func (e *MalformedCallbackError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed oauth callback: %s: %v", e.Reason, e.Err)
	}
	return "malformed oauth callback: " + e.Reason
}

func (e *MalformedCallbackError) Unwrap() error { return e.Err }

// Message returns text suitable for showing to an end user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return networkFailureMessage
	}

	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return authFailureMessage
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	if errors.Is(err, ErrInvalidCredentials) {
		return "Invalid email or password."
	}

	var callbackErr *MalformedCallbackError
	if errors.As(err, &callbackErr) {
		return "Invalid authentication response. Please try again."
	}

	if errors.Is(err, ErrOAuthDenied) {
		return "Google authentication failed. Please try again."
	}

	return genericFailureMessage
}

// StatusCode extracts the HTTP status carried by err, or 0 when none.
func StatusCode(err error) int {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized
	}
	return 0
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single import.
func New(text string) error {
	return errors.New(text)
}
