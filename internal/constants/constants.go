package constants

import "time"

// HTTP and network timeouts.
const (
	// RequestTimeout is the fixed, non-configurable ceiling for every API
	// request, including the token exchange.
	RequestTimeout = 20 * time.Second
)

// Retry limits. Retries are off unless a caller opts in via config.
const (
	// DefaultRetryWaitMin is the minimum backoff between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between opt-in retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// OAuth2 token exchange.
const (
	// TokenPath is the path of the token endpoint, relative to the base URL.
	TokenPath = "oauth/token"

	// GrantClientCredentials is the grant type used for the token exchange.
	GrantClientCredentials = "client_credentials"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Date formats accepted by the remote API. Not validated by the library;
// kept here for callers and the CLI.
const (
	// MetricsDateFormat is the from/to layout for metrics and ratings.
	MetricsDateFormat = "2006-01-02"

	// KeywordsDateFormat is the from/to layout for keyword analytics.
	KeywordsDateFormat = "2006-01"
)

// DefaultUserAgent identifies the client on the wire.
const DefaultUserAgent = "pinmeto-go-client"
