// Package pmclient provides the entry point for creating PinMeTo API
// clients.
package pmclient

import (
	"github.com/pinmeto-community/pinmeto-client/internal/client"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// New creates a PinMeTo API client from the given configuration.
//
// Validation is strict and runs before anything else: every missing
// credential is reported in one ConfigError, and Mode must be live or test.
// No network call happens here; the first authenticated call triggers the
// token exchange.
func New(config *pinmeto.Config) (pinmeto.Client, error) {
	err := validate(config)
	if err != nil {
		return nil, err
	}

	baseURL, _ := pinmeto.Endpoint(config.Mode)

	return client.New(config, baseURL), nil
}

// NewWithClientCredentials creates a client from bare credentials.
func NewWithClientCredentials(appID, appSecret, accountID string, mode pinmeto.Mode) (pinmeto.Client, error) {
	return New(&pinmeto.Config{
		AppID:     appID,
		AppSecret: appSecret,
		AccountID: accountID,
		Mode:      mode,
	})
}

// validate checks the config. Pure; called once per construction.
func validate(config *pinmeto.Config) error {
	if config == nil {
		return &pinmeto.ConfigError{
			Kind:    pinmeto.ConfigMissingCredential,
			Missing: []string{"app_id", "app_secret", "account_id"},
		}
	}

	var missing []string

	if config.AppID == "" {
		missing = append(missing, "app_id")
	}

	if config.AppSecret == "" {
		missing = append(missing, "app_secret")
	}

	if config.AccountID == "" {
		missing = append(missing, "account_id")
	}

	if len(missing) > 0 {
		return &pinmeto.ConfigError{
			Kind:    pinmeto.ConfigMissingCredential,
			Missing: missing,
		}
	}

	_, ok := pinmeto.Endpoint(config.Mode)
	if !ok {
		return &pinmeto.ConfigError{
			Kind: pinmeto.ConfigInvalidMode,
			Mode: config.Mode,
		}
	}

	return nil
}
