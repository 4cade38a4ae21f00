package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// validateSource rejects metrics/ratings sources outside the allowed
// enumeration before any network call.
func validateSource(source string) error {
	if slices.Contains(pinmeto.MetricsSources, source) {
		return nil
	}

	return &pinmeto.ValidationError{
		Kind:    pinmeto.ValidationInvalidSource,
		Field:   "source",
		Value:   source,
		Allowed: pinmeto.MetricsSources,
	}
}

// scopedPath appends the optional store ID to an insights-style path.
func scopedPath(base, storeID string) string {
	if storeID == "" {
		return base
	}

	return base + "/" + storeID
}

// GetMetrics implements pinmeto.Client.GetMetrics. from and to use
// YYYY-MM-DD; the layout is the caller's responsibility.
func (c *Client) GetMetrics(ctx context.Context, source, from, to string, fields []string, storeID string) ([]byte, error) {
	err := validateSource(source)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	resp, err := c.httpClient.Get(ctx, c.resolve(scopedPath("insights/"+source, storeID)), query)
	if err != nil {
		return nil, fmt.Errorf("getting %s metrics: %w", source, err)
	}

	return resp.Body, nil
}

// GetKeywords implements pinmeto.Client.GetKeywords. from and to use
// YYYY-MM; the layout is the caller's responsibility.
func (c *Client) GetKeywords(ctx context.Context, from, to, storeID string) ([]byte, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	resp, err := c.httpClient.Get(ctx, c.resolve(scopedPath("insights/google-keywords", storeID)), query)
	if err != nil {
		return nil, fmt.Errorf("getting keywords: %w", err)
	}

	return resp.Body, nil
}

// GetRatings implements pinmeto.Client.GetRatings.
func (c *Client) GetRatings(ctx context.Context, source, from, to, storeID string) ([]byte, error) {
	err := validateSource(source)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	resp, err := c.httpClient.Get(ctx, c.resolve(scopedPath("ratings/"+source, storeID)), query)
	if err != nil {
		return nil, fmt.Errorf("getting %s ratings: %w", source, err)
	}

	return resp.Body, nil
}
