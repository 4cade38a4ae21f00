package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
	"github.com/pinmeto-community/pinmeto-client/pkg/pmclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// CreateClient builds an API client from the effective viper configuration
// (flags, environment, config file).
func CreateClient() (pinmeto.Client, error) {
	config := &pinmeto.Config{
		AppID:     viper.GetString("app_id"),
		AppSecret: viper.GetString("app_secret"),
		AccountID: viper.GetString("account_id"),
		Mode:      pinmeto.Mode(viper.GetString("mode")),
		Debug:     viper.GetBool("verbose"),
	}

	client, err := pmclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// outputBody renders a raw API response body. JSON output re-indents the
// body; YAML output converts it; the default prints it as-is with a trailing
// newline.
func outputBody(body []byte) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		var buf bytes.Buffer

		err := json.Indent(&buf, body, "", "  ")
		if err != nil {
			// Not JSON, print raw
			_, _ = os.Stdout.Write(body)
			fmt.Println()

			return nil
		}

		_, _ = buf.WriteTo(os.Stdout)
		fmt.Println()

		return nil
	case OutputFormatYAML:
		var data interface{}

		err := json.Unmarshal(body, &data)
		if err != nil {
			_, _ = os.Stdout.Write(body)
			fmt.Println()

			return nil
		}

		encoder := yaml.NewEncoder(os.Stdout)

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		_, _ = os.Stdout.Write(body)
		fmt.Println()

		return nil
	}
}

// locationSummary is the subset of a location document shown in tables.
type locationSummary struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"address"`
	Contact struct {
		Phone string `json:"phone"`
	} `json:"contact"`
}

// apiError mirrors the error envelope the API wraps failures in.
type apiError struct {
	Error struct {
		Code        int    `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// checkAPIError surfaces an API error envelope as a command error so the
// table renderers never see failure bodies.
func checkAPIError(body []byte) error {
	var envelope apiError

	err := json.Unmarshal(body, &envelope)
	if err != nil || envelope.Error.Description == "" {
		return nil
	}

	return fmt.Errorf("API error %d: %s", envelope.Error.Code, envelope.Error.Description)
}

// saveConfig persists the current viper settings to the active config file,
// creating ~/.pinmeto/config.yml when none is in use yet.
func saveConfig() error {
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".pinmeto")

	err = os.MkdirAll(configDir, 0700)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return viper.WriteConfigAs(filepath.Join(configDir, "config.yml"))
}
