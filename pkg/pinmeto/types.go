package pinmeto

import (
	"context"
	"net/url"
	"time"
)

// Mode selects which PinMeTo environment a client talks to.
type Mode string

const (
	// ModeLive targets the production API.
	ModeLive Mode = "live"

	// ModeTest targets the sandbox API.
	ModeTest Mode = "test"
)

// API base URLs. Endpoint is a pure function of Mode; there is no third
// environment.
const (
	LiveEndpoint = "https://api.pinmeto.com"
	TestEndpoint = "https://api.test.pinmeto.com"
)

// Endpoint returns the base URL for the given mode. The second return value
// is false when the mode is not one of ModeLive/ModeTest.
func Endpoint(mode Mode) (string, bool) {
	switch mode {
	case ModeLive:
		return LiveEndpoint, true
	case ModeTest:
		return TestEndpoint, true
	default:
		return "", false
	}
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a pinmeto.Client.
//
// AppID, AppSecret, AccountID, and Mode are required; pmclient.New fails
// with a ConfigError naming every missing field before any network call is
// attempted. The remaining fields are optional.
type Config struct {
	// AppID is the OAuth2 client ID issued by PinMeTo.
	AppID string

	// AppSecret is the OAuth2 client secret paired with AppID.
	AppSecret string

	// AccountID is the PinMeTo account the client operates on. It becomes a
	// path segment of every account-scoped request.
	AccountID string

	// Mode selects the live or test environment.
	Mode Mode

	// TokenStore holds the cached bearer token. If nil, an in-memory store
	// scoped to this client instance is used. Inject a shared store (e.g.
	// NATSTokenStore) to share tokens across client instances explicitly.
	TokenStore TokenStore

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string

	// RetryMax is the maximum number of retries for transient transport
	// failures. The default of 0 performs no retries, matching the API
	// contract; only set this if your caller tolerates repeated requests.
	RetryMax int

	// RetryWaitMin is the minimum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMax time.Duration
}

// TokenState is a cached bearer token together with its expiry.
type TokenState struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be attached to a request at
// instant now. A token is valid iff it is non-empty and now is strictly
// before ExpiresAt. A zero ExpiresAt means the token never expires.
func (t *TokenState) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return now.Before(t.ExpiresAt)
}

// TokenStore is the injectable cache for the bearer token. Get returns nil
// (not an error) when no token has been stored yet.
//
// The default implementation is in-memory and per-client; stores backed by
// shared infrastructure may be injected to share one token across processes.
// Implementations must be safe for concurrent use.
type TokenStore interface {
	Get(ctx context.Context) (*TokenState, error)
	Set(ctx context.Context, token *TokenState) error
	Clear(ctx context.Context) error
}

// MetricsSources enumerates the networks accepted by GetMetrics and
// GetRatings.
var MetricsSources = []string{"google", "facebook"}

// CategoryNetworks enumerates the networks accepted by GetNetworkCategories.
var CategoryNetworks = []string{"google", "facebook", "bing", "apple"}

// Client is the public surface of the PinMeTo API client.
//
// Every method issues at most one network round-trip and blocks until
// completion or the fixed 20-second timeout. Methods return the raw response
// body unmodified; remote-API error payloads (including non-2xx statuses)
// are the caller's to interpret.
type Client interface {
	// GetLocations lists locations. params is passed through as the query
	// string (e.g. pagesize, next, before); it may be nil.
	GetLocations(ctx context.Context, params url.Values) ([]byte, error)

	// GetLocation fetches a single location by store ID.
	GetLocation(ctx context.Context, storeID string) ([]byte, error)

	// CreateLocation creates a location. With upsert true the call updates
	// an existing location with the same store ID instead of failing.
	CreateLocation(ctx context.Context, params interface{}, upsert bool) ([]byte, error)

	// UpdateLocation updates an existing location by store ID.
	UpdateLocation(ctx context.Context, storeID string, params interface{}) ([]byte, error)

	// GetMetrics fetches insights for source ("google" or "facebook")
	// between from and to (YYYY-MM-DD, not validated here). fields narrows
	// the returned metrics; storeID narrows to one location. Both optional.
	GetMetrics(ctx context.Context, source, from, to string, fields []string, storeID string) ([]byte, error)

	// GetKeywords fetches Google keyword analytics between from and to
	// (YYYY-MM, not validated here). storeID is optional.
	GetKeywords(ctx context.Context, from, to, storeID string) ([]byte, error)

	// GetRatings fetches ratings for source ("google" or "facebook")
	// between from and to (YYYY-MM-DD). storeID is optional.
	GetRatings(ctx context.Context, source, from, to, storeID string) ([]byte, error)

	// GetNetworkCategories lists the category taxonomy of a network
	// ("google", "facebook", "bing", or "apple").
	GetNetworkCategories(ctx context.Context, network string) ([]byte, error)
}
