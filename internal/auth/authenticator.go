// Package auth implements the OAuth2 client-credentials flow against an
// injectable token store.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/pinmeto-community/pinmeto-client/internal/constants"
	internalhttp "github.com/pinmeto-community/pinmeto-client/internal/http"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// Config carries what the authenticator needs for the token exchange.
type Config struct {
	// TokenURL is the full token endpoint URL ({base}/oauth/token).
	TokenURL string

	// AppID and AppSecret authenticate the exchange via HTTP Basic.
	AppID     string
	AppSecret string

	// Store caches the obtained token. Required.
	Store pinmeto.TokenStore
}

// tokenResponse is the token endpoint's JSON shape.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Authenticator obtains and caches bearer tokens. A valid cached token is
// returned without any network call; an absent or expired one triggers
// exactly one synchronous token exchange before the caller proceeds.
//
// Authenticator implements the dispatcher's TokenProvider.
type Authenticator struct {
	config     *Config
	httpClient *internalhttp.Client

	// mutex serializes the check-fetch-store cycle within this client
	// instance. Stores shared across instances remain last-writer-wins,
	// matching the remote API's token semantics.
	mutex sync.Mutex

	// now is stubbed in tests.
	now func() time.Time
}

// NewAuthenticator creates an authenticator that performs the token
// exchange through the given dispatcher, so the fixed timeout and transport
// classification apply to auth calls too.
func NewAuthenticator(config *Config, httpClient *internalhttp.Client) *Authenticator {
	return &Authenticator{
		config:     config,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// SetHTTPClient wires the dispatcher. Needed because the dispatcher and the
// authenticator reference each other: the dispatcher asks the authenticator
// for bearer tokens, and the authenticator performs the token exchange
// through the dispatcher (with Basic auth, so no recursion occurs).
func (a *Authenticator) SetHTTPClient(httpClient *internalhttp.Client) {
	a.httpClient = httpClient
}

// GetToken returns a valid access token, refreshing it if necessary.
func (a *Authenticator) GetToken(ctx context.Context) (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	cached, err := a.config.Store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("reading token store: %w", err)
	}

	if cached.Valid(a.now()) {
		return cached.AccessToken, nil
	}

	token, err := a.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	err = a.config.Store.Set(ctx, token)
	if err != nil {
		return "", fmt.Errorf("writing token store: %w", err)
	}

	return token.AccessToken, nil
}

// RefreshToken discards the cached token and fetches a fresh one.
func (a *Authenticator) RefreshToken(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	token, err := a.fetchToken(ctx)
	if err != nil {
		return err
	}

	err = a.config.Store.Set(ctx, token)
	if err != nil {
		return fmt.Errorf("writing token store: %w", err)
	}

	return nil
}

// fetchToken performs the client-credentials exchange. On a response
// without an access token the store is left untouched.
func (a *Authenticator) fetchToken(ctx context.Context) (*pinmeto.TokenState, error) {
	form := url.Values{}
	form.Set("grant_type", constants.GrantClientCredentials)

	resp, err := a.httpClient.PostForm(ctx, a.config.TokenURL, form, &internalhttp.BasicAuth{
		Username: a.config.AppID,
		Password: a.config.AppSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	var parsed tokenResponse

	err = json.Unmarshal(resp.Body, &parsed)
	if err != nil {
		return nil, &pinmeto.AuthError{
			Kind:   pinmeto.AuthTokenMissing,
			Detail: fmt.Sprintf("token endpoint returned unparseable body: %v", err),
		}
	}

	if parsed.AccessToken == "" {
		return nil, &pinmeto.AuthError{
			Kind:   pinmeto.AuthTokenMissing,
			Detail: "token endpoint response has no access_token",
		}
	}

	return &pinmeto.TokenState{
		AccessToken: parsed.AccessToken,
		ExpiresAt:   a.now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
	}, nil
}
