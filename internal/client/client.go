// Package client implements the pinmeto.Client facade on top of the
// router, the authenticator, and the request dispatcher.
package client

import (
	"github.com/pinmeto-community/pinmeto-client/internal/auth"
	"github.com/pinmeto-community/pinmeto-client/internal/constants"
	internalhttp "github.com/pinmeto-community/pinmeto-client/internal/http"
	"github.com/pinmeto-community/pinmeto-client/internal/routing"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// Client implements the pinmeto.Client interface.
type Client struct {
	config        *pinmeto.Config
	baseURL       string
	httpClient    *internalhttp.Client
	authenticator *auth.Authenticator
}

// New creates the facade for an already validated config. baseURL is the
// mode-derived endpoint. The config's TokenStore is used as-is; callers
// without one get a per-instance in-memory store.
func New(config *pinmeto.Config, baseURL string) *Client {
	store := config.TokenStore
	if store == nil {
		store = pinmeto.NewMemoryTokenStore()
	}

	authenticator := auth.NewAuthenticator(&auth.Config{
		TokenURL:  routing.Resolve(baseURL, config.AccountID, constants.TokenPath),
		AppID:     config.AppID,
		AppSecret: config.AppSecret,
		Store:     store,
	}, nil)

	httpClient := internalhttp.NewClient(authenticator, httpOptions(config)...)
	authenticator.SetHTTPClient(httpClient)

	return &Client{
		config:        config,
		baseURL:       baseURL,
		httpClient:    httpClient,
		authenticator: authenticator,
	}
}

// httpOptions builds dispatcher options from config.
func httpOptions(config *pinmeto.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}

// Authenticator exposes the token manager, e.g. for pre-flight login
// verification.
func (c *Client) Authenticator() *auth.Authenticator {
	return c.authenticator
}

// resolve routes a logical call path to its full URL.
func (c *Client) resolve(path string) string {
	return routing.Resolve(c.baseURL, c.config.AccountID, path)
}
