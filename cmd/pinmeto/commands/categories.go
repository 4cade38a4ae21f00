package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// NewCategoriesCommand creates the categories command
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories NETWORK",
		Short: "List network categories",
		Long: "List the category taxonomy of a network (" +
			strings.Join(pinmeto.CategoryNetworks, ", ") + ")",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.GetNetworkCategories(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				return outputBody(body)
			}

			if err := checkAPIError(body); err != nil {
				return err
			}

			var page struct {
				Data []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"data"`
			}

			err = json.Unmarshal(body, &page)
			if err != nil {
				return fmt.Errorf("parsing categories response: %w", err)
			}

			if len(page.Data) == 0 {
				fmt.Println("No categories found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name")

			for _, category := range page.Data {
				_ = table.Append(category.ID, category.Name)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
