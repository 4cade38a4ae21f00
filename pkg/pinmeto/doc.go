// Package pinmeto provides types, interfaces, and helpers for working with
// the PinMeTo location-data API.
//
// # Overview
//
// The pinmeto package defines the client configuration, the error taxonomy,
// the token-store abstraction, and the Client interface covering the
// documented API subset (locations CRUD, insights, keyword analytics,
// ratings, and network categories). A concrete implementation is provided by
// the pmclient package, which wires configuration validation, transport,
// authentication, and endpoint routing. Most consumers should import pmclient
// to construct a client and then interact with the Client interface exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
//	  "github.com/pinmeto-community/pinmeto-client/pkg/pmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := pmclient.New(&pinmeto.Config{
//	    AppID:     "my-app-id",
//	    AppSecret: "my-app-secret",
//	    AccountID: "my-account",
//	    Mode:      pinmeto.ModeTest,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  body, err := cli.GetLocation(ctx, "store-8")
//	  if err != nil { log.Fatal(err) }
//	  _ = body // raw JSON from the API
//	}
//
// # Response handling
//
// All Client methods return the raw response body. The library never
// inspects HTTP status codes from the remote API: a 4xx/5xx response is
// returned as a successful raw body, and callers interpret the JSON error
// payload themselves. The error taxonomy covers configuration, validation,
// authentication, and transport failures only.
//
// # Token caching
//
// Bearer tokens obtained via the OAuth2 client-credentials grant are cached
// in a TokenStore. The default store is in-memory and scoped to a single
// client instance; inject a shared implementation (for example
// NATSTokenStore) to share tokens across processes.
package pinmeto
