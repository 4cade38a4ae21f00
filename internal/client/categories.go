package client

import (
	"context"
	"fmt"
	"slices"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// GetNetworkCategories implements pinmeto.Client.GetNetworkCategories.
// Category paths route to the v2 family for every network, including
// google and facebook.
func (c *Client) GetNetworkCategories(ctx context.Context, network string) ([]byte, error) {
	if !slices.Contains(pinmeto.CategoryNetworks, network) {
		return nil, &pinmeto.ValidationError{
			Kind:    pinmeto.ValidationInvalidNetwork,
			Field:   "network",
			Value:   network,
			Allowed: pinmeto.CategoryNetworks,
		}
	}

	resp, err := c.httpClient.Get(ctx, c.resolve("categories/"+network), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s categories: %w", network, err)
	}

	return resp.Body, nil
}
