package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLocationsCommand creates the locations command group
func NewLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location", "loc"},
		Short:   "Manage locations",
		Long:    "List, get, create, and update locations for the account",
	}

	cmd.AddCommand(newLocationsListCommand())
	cmd.AddCommand(newLocationsGetCommand())
	cmd.AddCommand(newLocationsCreateCommand())
	cmd.AddCommand(newLocationsUpdateCommand())

	return cmd
}

func newLocationsListCommand() *cobra.Command {
	var (
		pageSize int
		next     string
		before   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		Long:  "List all locations for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := url.Values{}
			if pageSize > 0 {
				params.Set("pagesize", strconv.Itoa(pageSize))
			}

			if next != "" {
				params.Set("next", next)
			}

			if before != "" {
				params.Set("before", before)
			}

			body, err := client.GetLocations(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list locations: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				return outputBody(body)
			}

			if err := checkAPIError(body); err != nil {
				return err
			}

			var page struct {
				Data   []locationSummary `json:"data"`
				Paging struct {
					Next string `json:"next"`
				} `json:"paging"`
			}

			err = json.Unmarshal(body, &page)
			if err != nil {
				return fmt.Errorf("parsing locations response: %w", err)
			}

			if len(page.Data) == 0 {
				fmt.Println("No locations found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Store ID", "Name", "Street", "City", "Country")

			for _, location := range page.Data {
				_ = table.Append(location.StoreID, location.Name,
					location.Address.Street, location.Address.City, location.Address.Country)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if page.Paging.Next != "" {
				fmt.Printf("\nMore results available. Continue with: --next %s\n", page.Paging.Next)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "pagesize", 0, "number of locations per page")
	cmd.Flags().StringVar(&next, "next", "", "cursor for the next page")
	cmd.Flags().StringVar(&before, "before", "", "cursor for the previous page")

	return cmd
}

func newLocationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STORE_ID",
		Short: "Get a location",
		Long:  "Get a single location by its store ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.GetLocation(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get location: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				return outputBody(body)
			}

			if err := checkAPIError(body); err != nil {
				return err
			}

			var doc struct {
				Data locationSummary `json:"data"`
			}

			err = json.Unmarshal(body, &doc)
			if err != nil {
				return fmt.Errorf("parsing location response: %w", err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")

			_ = table.Append("Store ID", doc.Data.StoreID)
			_ = table.Append("Name", doc.Data.Name)
			_ = table.Append("Street", doc.Data.Address.Street)
			_ = table.Append("City", doc.Data.Address.City)
			_ = table.Append("Country", doc.Data.Address.Country)
			_ = table.Append("Phone", doc.Data.Contact.Phone)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// readLocationPayload loads the location document from --from-file or stdin.
func readLocationPayload(fromFile string) (interface{}, error) {
	var (
		raw []byte
		err error
	)

	if fromFile == "" || fromFile == "-" {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading location from stdin: %w", err)
		}
	} else {
		raw, err = os.ReadFile(fromFile)
		if err != nil {
			return nil, fmt.Errorf("reading location file: %w", err)
		}
	}

	var payload interface{}

	err = json.Unmarshal(raw, &payload)
	if err != nil {
		return nil, fmt.Errorf("parsing location JSON: %w", err)
	}

	return payload, nil
}

func newLocationsCreateCommand() *cobra.Command {
	var (
		fromFile string
		upsert   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a location",
		Long:  "Create a location from a JSON document (file or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readLocationPayload(fromFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.CreateLocation(context.Background(), payload, upsert)
			if err != nil {
				return fmt.Errorf("failed to create location: %w", err)
			}

			return outputBody(body)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON file with the location document (- for stdin)")
	cmd.Flags().BoolVar(&upsert, "upsert", false, "update the location if the store ID already exists")

	return cmd
}

func newLocationsUpdateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update STORE_ID",
		Short: "Update a location",
		Long:  "Update a location from a JSON document (file or stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readLocationPayload(fromFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.UpdateLocation(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to update location: %w", err)
			}

			return outputBody(body)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON file with the location fields (- for stdin)")

	return cmd
}
