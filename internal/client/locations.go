package client

import (
	"context"
	"fmt"
	"net/url"
)

// GetLocations implements pinmeto.Client.GetLocations. params is passed
// through as the query string unmodified.
func (c *Client) GetLocations(ctx context.Context, params url.Values) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, c.resolve("locations"), params)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	return resp.Body, nil
}

// GetLocation implements pinmeto.Client.GetLocation.
func (c *Client) GetLocation(ctx context.Context, storeID string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, c.resolve("locations/"+storeID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting location %q: %w", storeID, err)
	}

	return resp.Body, nil
}

// CreateLocation implements pinmeto.Client.CreateLocation. With upsert the
// call targets locations/?upsert=true and updates an existing location with
// the same store ID instead of failing.
func (c *Client) CreateLocation(ctx context.Context, params interface{}, upsert bool) ([]byte, error) {
	path := "locations"
	if upsert {
		path = "locations/?upsert=true"
	}

	resp, err := c.httpClient.Post(ctx, c.resolve(path), params)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	return resp.Body, nil
}

// UpdateLocation implements pinmeto.Client.UpdateLocation.
func (c *Client) UpdateLocation(ctx context.Context, storeID string, params interface{}) ([]byte, error) {
	resp, err := c.httpClient.Put(ctx, c.resolve("locations/"+storeID), params)
	if err != nil {
		return nil, fmt.Errorf("updating location %q: %w", storeID, err)
	}

	return resp.Body, nil
}
