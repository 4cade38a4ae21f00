//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
	"github.com/pinmeto-community/pinmeto-client/pkg/pmclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	AppID     string
	AppSecret string
	AccountID string
	Mode      string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	mode := os.Getenv("PINMETO_MODE")
	if mode == "" {
		mode = "test"
	}

	return &TestConfig{
		AppID:     os.Getenv("PINMETO_APP_ID"),
		AppSecret: os.Getenv("PINMETO_APP_SECRET"),
		AccountID: os.Getenv("PINMETO_ACCOUNT_ID"),
		Mode:      mode,
		Verbose:   os.Getenv("PINMETO_VERBOSE") == "true",
	}
}

// RequireClient skips the test when credentials are not configured and
// returns a ready client otherwise.
func RequireClient(t *testing.T) pinmeto.Client {
	t.Helper()

	config := LoadTestConfig()
	if config.AppID == "" || config.AppSecret == "" || config.AccountID == "" {
		t.Skip("PINMETO_APP_ID, PINMETO_APP_SECRET, and PINMETO_ACCOUNT_ID must be set for integration tests")
	}

	client, err := pmclient.New(&pinmeto.Config{
		AppID:     config.AppID,
		AppSecret: config.AppSecret,
		AccountID: config.AccountID,
		Mode:      pinmeto.Mode(config.Mode),
		Debug:     config.Verbose,
		Logger:    testLogger{t: t, verbose: config.Verbose},
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return client
}

// testLogger routes client debug output through the test log.
type testLogger struct {
	t       *testing.T
	verbose bool
}

func (l testLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.t.Logf("DEBUG %s %v", msg, fields)
	}
}

func (l testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }
