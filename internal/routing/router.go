// Package routing resolves logical call paths to full PinMeTo URLs.
//
// The API exposes three endpoint families behind two hosts: the unversioned
// auth family (token exchange), the v2 family (locations, categories, and
// everything else account-scoped), and the listings v3 family (per-network
// insights and ratings). Which family a call belongs to is decided purely
// from its path, by the ordered rule table below. The table is a
// compatibility surface with the remote API and must not be reordered.
package routing

import "strings"

// Family identifies an endpoint family.
type Family string

const (
	// FamilyAuth is the unversioned token endpoint.
	FamilyAuth Family = "auth"

	// FamilyV2 is the account-scoped v2 API (locations, categories).
	FamilyV2 Family = "v2"

	// FamilyListingsV3 is the account-scoped listings v3 API (per-network
	// insights, keywords, ratings).
	FamilyListingsV3 Family = "listings-v3"
)

// Classify returns the endpoint family for a logical call path. Rules are
// evaluated top to bottom, first match wins:
//
//  1. A path containing "token" belongs to the auth family. No account
//     segment, no version prefix.
//  2. A path containing "google" or "facebook", but not "categories",
//     belongs to the listings v3 family.
//  3. Every other path belongs to the v2 family. Note that this includes
//     "categories/google" and "categories/facebook": the category taxonomy
//     lives under v2 for all networks.
func Classify(path string) Family {
	switch {
	case strings.Contains(path, "token"):
		return FamilyAuth
	case (strings.Contains(path, "google") || strings.Contains(path, "facebook")) &&
		!strings.Contains(path, "categories"):
		return FamilyListingsV3
	default:
		return FamilyV2
	}
}

// Resolve builds the full request URL for a logical call path. baseURL is
// the mode-derived host, accountID scopes v2 and listings v3 calls.
func Resolve(baseURL, accountID, path string) string {
	switch Classify(path) {
	case FamilyAuth:
		return baseURL + "/" + path
	case FamilyListingsV3:
		return baseURL + "/listings/v3/" + accountID + "/" + path
	default:
		return baseURL + "/v2/" + accountID + "/" + path
	}
}
