package pinmeto

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigErrorKind discriminates configuration failures.
type ConfigErrorKind string

const (
	// ConfigMissingCredential means one or more required credentials were
	// empty at construction.
	ConfigMissingCredential ConfigErrorKind = "missing_credential"

	// ConfigInvalidMode means Mode was absent or not one of live/test.
	ConfigInvalidMode ConfigErrorKind = "invalid_mode"
)

// ConfigError is raised synchronously at construction; the client is never
// built.
type ConfigError struct {
	Kind ConfigErrorKind

	// Missing lists every absent credential field, populated for
	// ConfigMissingCredential.
	Missing []string

	// Mode carries the rejected value, populated for ConfigInvalidMode.
	Mode Mode
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch e.Kind {
	case ConfigMissingCredential:
		return fmt.Sprintf("missing required credentials: %s", strings.Join(e.Missing, ", "))
	case ConfigInvalidMode:
		return fmt.Sprintf("invalid mode %q: must be %q or %q", e.Mode, ModeLive, ModeTest)
	default:
		return fmt.Sprintf("invalid configuration (%s)", e.Kind)
	}
}

// AuthErrorKind discriminates authentication failures.
type AuthErrorKind string

const (
	// AuthTokenMissing means the token endpoint responded without an
	// access_token.
	AuthTokenMissing AuthErrorKind = "token_missing"
)

// AuthError is raised when the OAuth2 token exchange does not yield a usable
// token. The cached token, if any, is left unchanged.
type AuthError struct {
	Kind   AuthErrorKind
	Detail string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authentication failed (%s): %s", e.Kind, e.Detail)
	}

	return fmt.Sprintf("authentication failed (%s)", e.Kind)
}

// ValidationErrorKind discriminates pre-flight argument failures.
type ValidationErrorKind string

const (
	// ValidationInvalidSource means a metrics/ratings source outside
	// MetricsSources was supplied.
	ValidationInvalidSource ValidationErrorKind = "invalid_source"

	// ValidationInvalidNetwork means a categories network outside
	// CategoryNetworks was supplied.
	ValidationInvalidNetwork ValidationErrorKind = "invalid_network"
)

// ValidationError is raised before any network call when a facade argument
// is outside its allowed enumeration.
type ValidationError struct {
	Kind    ValidationErrorKind
	Field   string
	Value   string
	Allowed []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// TransportErrorKind classifies failures of the underlying transport.
type TransportErrorKind string

const (
	// TransportConnectionFailed covers DNS and TCP-level connection errors.
	TransportConnectionFailed TransportErrorKind = "connection_failed"

	// TransportTimeout covers the fixed request timeout and context
	// deadlines.
	TransportTimeout TransportErrorKind = "timeout"

	// TransportCertificateError covers TLS certificate verification
	// failures.
	TransportCertificateError TransportErrorKind = "certificate_error"

	// TransportTooManyRedirects covers the redirect-loop guard of the
	// transport.
	TransportTooManyRedirects TransportErrorKind = "too_many_redirects"

	// TransportOther covers every transport failure not classified above.
	TransportOther TransportErrorKind = "other"
)

// TransportError wraps a transport-level failure with its classification.
// The remote API never produces a TransportError: responses with non-2xx
// statuses are returned as successful raw bodies.
type TransportError struct {
	Kind TransportErrorKind
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure (%s) for %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsMissingCredential checks if the error is a missing-credential config
// error.
func IsMissingCredential(err error) bool {
	cfgErr := &ConfigError{}

	return errors.As(err, &cfgErr) && cfgErr.Kind == ConfigMissingCredential
}

// IsInvalidMode checks if the error is an invalid-mode config error.
func IsInvalidMode(err error) bool {
	cfgErr := &ConfigError{}

	return errors.As(err, &cfgErr) && cfgErr.Kind == ConfigInvalidMode
}

// IsTokenMissing checks if the error means the token endpoint responded
// without an access token.
func IsTokenMissing(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr) && authErr.Kind == AuthTokenMissing
}

// IsTimeout checks if the error is a transport timeout.
func IsTimeout(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr) && transportErr.Kind == TransportTimeout
}

// IsConnectionFailed checks if the error is a transport connection failure.
func IsConnectionFailed(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr) && transportErr.Kind == TransportConnectionFailed
}
