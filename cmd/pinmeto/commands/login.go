package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
	"github.com/pinmeto-community/pinmeto-client/pkg/pmclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		appID     string
		appSecret string
		accountID string
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to PinMeTo",
		Long:  "Verify app credentials against the PinMeTo API and save them for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if appID == "" {
				appID = viper.GetString("app_id")
			}

			if appID == "" {
				fmt.Print("App ID: ")
				appID, _ = reader.ReadString('\n')
				appID = strings.TrimSpace(appID)
			}

			if accountID == "" {
				accountID = viper.GetString("account_id")
			}

			if accountID == "" {
				fmt.Print("Account ID: ")
				accountID, _ = reader.ReadString('\n')
				accountID = strings.TrimSpace(accountID)
			}

			if appSecret == "" {
				appSecret = viper.GetString("app_secret")
			}

			if appSecret == "" {
				fmt.Print("App secret: ")

				byteSecret, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read app secret: %w", err)
				}

				appSecret = string(byteSecret)

				fmt.Println()
			}

			if mode == "" {
				mode = viper.GetString("mode")
			}

			client, err := pmclient.NewWithClientCredentials(appID, appSecret, accountID, pinmeto.Mode(mode))
			if err != nil {
				return err
			}

			// Verify the credentials with a minimal authenticated call
			ctx := context.Background()

			body, err := client.GetLocations(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			if err := checkAPIError(body); err != nil {
				return fmt.Errorf("credentials rejected: %w", err)
			}

			// Save credentials
			viper.Set("app_id", appID)
			viper.Set("app_secret", appSecret)
			viper.Set("account_id", accountID)
			viper.Set("mode", mode)

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to account '%s' (%s mode)\n", accountID, mode)

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVar(&appID, "app-id", "", "PinMeTo app ID")
	cmd.Flags().StringVar(&appSecret, "app-secret", "", "PinMeTo app secret")
	cmd.Flags().StringVar(&accountID, "account-id", "", "PinMeTo account ID")
	cmd.Flags().StringVar(&mode, "mode", "", "API mode (live, test)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from PinMeTo",
		Long:  "Clear saved credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("app_id", "")
			viper.Set("app_secret", "")
			viper.Set("account_id", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}
