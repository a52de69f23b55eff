package errors

import (
	"errors"
	"fmt"
)

// Common error types for the web front end
var (
	// OAuth callback errors
	ErrMissingCode            = errors.New("missing authorization code")
	ErrUpstreamAuth           = errors.New("upstream auth request failed")
	ErrMalformedTokenResponse = errors.New("token response missing access_token")

	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

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
