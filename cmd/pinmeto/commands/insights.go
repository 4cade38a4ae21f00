package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewInsightsCommand creates the insights command group
func NewInsightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"metrics"},
		Short:   "Fetch listing insights",
		Long:    "Fetch Google and Facebook insights metrics and Google keywords",
	}

	cmd.AddCommand(newInsightsMetricsCommand())
	cmd.AddCommand(newInsightsKeywordsCommand())

	return cmd
}

func newInsightsMetricsCommand() *cobra.Command {
	var (
		from    string
		to      string
		fields  []string
		storeID string
	)

	cmd := &cobra.Command{
		Use:   "metrics SOURCE",
		Short: "Fetch insights metrics",
		Long:  "Fetch insights metrics from google or facebook for the account or a single store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.GetMetrics(context.Background(), args[0], from, to, fields, storeID)
			if err != nil {
				return fmt.Errorf("failed to get metrics: %w", err)
			}

			return outputBody(body)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "metric fields to include")
	cmd.Flags().StringVar(&storeID, "store", "", "restrict to a single store ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newInsightsKeywordsCommand() *cobra.Command {
	var (
		from    string
		to      string
		storeID string
	)

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Fetch Google search keywords",
		Long:  "Fetch the Google search keywords that surfaced the account's locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.GetKeywords(context.Background(), from, to, storeID)
			if err != nil {
				return fmt.Errorf("failed to get keywords: %w", err)
			}

			return outputBody(body)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start month (YYYY-MM)")
	cmd.Flags().StringVar(&to, "to", "", "end month (YYYY-MM)")
	cmd.Flags().StringVar(&storeID, "store", "", "restrict to a single store ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// NewRatingsCommand creates the ratings command
func NewRatingsCommand() *cobra.Command {
	var (
		from    string
		to      string
		storeID string
	)

	cmd := &cobra.Command{
		Use:   "ratings SOURCE",
		Short: "Fetch ratings",
		Long:  "Fetch ratings from google or facebook for the account or a single store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.GetRatings(context.Background(), args[0], from, to, storeID)
			if err != nil {
				return fmt.Errorf("failed to get ratings: %w", err)
			}

			return outputBody(body)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&storeID, "store", "", "restrict to a single store ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
