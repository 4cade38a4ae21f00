package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinmeto-community/pinmeto-client/internal/client"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// newTestServer serves the token endpoint plus a recording handler for
// everything else.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "test-token",
				"token_type":   "bearer",
				"expires_in":   3600,
			})

			return
		}

		handler(w, r)
	}))
}

func newTestClient(serverURL string) *client.Client {
	return client.New(&pinmeto.Config{
		AppID:     "app-id",
		AppSecret: "app-secret",
		AccountID: "test-account",
		Mode:      pinmeto.ModeTest,
	}, serverURL)
}

func TestClient_Locations(t *testing.T) {
	t.Parallel()

	t.Run("GetLocations passes query through", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/test-account/locations", r.URL.Path)
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "100", r.URL.Query().Get("pagesize"))

			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		defer server.Close()

		params := url.Values{}
		params.Set("pagesize", "100")

		body, err := newTestClient(server.URL).GetLocations(context.Background(), params)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(body))
	})

	t.Run("GetLocation targets the store path", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/test-account/locations/8", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			_, _ = w.Write([]byte(`{"data":{"storeId":"8"}}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).GetLocation(context.Background(), "8")
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"storeId":"8"}}`, string(body))
	})

	t.Run("CreateLocation posts JSON", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/test-account/locations", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Empty(t, r.URL.Query().Get("upsert"))

			var payload map[string]interface{}

			_ = json.NewDecoder(r.Body).Decode(&payload)
			assert.Equal(t, "8", payload["storeId"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"storeId":"8"}}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).CreateLocation(context.Background(),
			map[string]string{"storeId": "8"}, false)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"storeId":"8"}}`, string(body))
	})

	t.Run("CreateLocation with upsert sets the query flag", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/v2/test-account/locations/", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("upsert"))

			_, _ = w.Write([]byte(`{"data":{"storeId":"8"}}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).CreateLocation(context.Background(),
			map[string]string{"storeId": "8"}, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"storeId":"8"}}`, string(body))
	})

	t.Run("UpdateLocation puts JSON to the store path", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PUT", r.Method)
			assert.Equal(t, "/v2/test-account/locations/8", r.URL.Path)

			var payload map[string]interface{}

			_ = json.NewDecoder(r.Body).Decode(&payload)
			assert.Equal(t, "New Name", payload["name"])

			_, _ = w.Write([]byte(`{"data":{"storeId":"8","name":"New Name"}}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).UpdateLocation(context.Background(), "8",
			map[string]string{"name": "New Name"})
		require.NoError(t, err)
		assert.Contains(t, string(body), "New Name")
	})

	t.Run("API error statuses surface as raw bodies", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"description":"No location found"}}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).GetLocation(context.Background(), "missing")
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":{"code":404,"description":"No location found"}}`, string(body))
	})
}

func TestClient_Insights(t *testing.T) {
	t.Parallel()

	t.Run("GetMetrics routes to listings v3", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/listings/v3/test-account/insights/google", r.URL.Path)
			assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
			assert.Equal(t, "2024-01-31", r.URL.Query().Get("to"))
			assert.Equal(t, "businessImpressionsDesktopMaps,businessImpressionsDesktopSearch",
				r.URL.Query().Get("fields"))

			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		defer server.Close()

		body, err := newTestClient(server.URL).GetMetrics(context.Background(),
			"google", "2024-01-01", "2024-01-31",
			[]string{"businessImpressionsDesktopMaps", "businessImpressionsDesktopSearch"}, "")
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(body))
	})

	t.Run("GetMetrics scopes to a single store", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/listings/v3/test-account/insights/facebook/store-1", r.URL.Path)

			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetMetrics(context.Background(),
			"facebook", "2024-01-01", "2024-01-31", nil, "store-1")
		require.NoError(t, err)
	})

	t.Run("GetMetrics rejects unknown source before dispatch", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the server")
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetMetrics(context.Background(),
			"yahoo", "2024-01-01", "2024-01-31", nil, "")
		require.Error(t, err)

		validationErr := &pinmeto.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, pinmeto.ValidationInvalidSource, validationErr.Kind)
		assert.Equal(t, "yahoo", validationErr.Value)
	})

	t.Run("GetKeywords uses the google keywords path", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/listings/v3/test-account/insights/google-keywords", r.URL.Path)
			assert.Equal(t, "2024-01", r.URL.Query().Get("from"))
			assert.Equal(t, "2024-03", r.URL.Query().Get("to"))

			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetKeywords(context.Background(), "2024-01", "2024-03", "")
		require.NoError(t, err)
	})

	t.Run("GetRatings routes to listings v3", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/listings/v3/test-account/ratings/google/store-1", r.URL.Path)

			_, _ = w.Write([]byte(`{"data":[]}`))
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetRatings(context.Background(),
			"google", "2024-01-01", "2024-01-31", "store-1")
		require.NoError(t, err)
	})

	t.Run("GetRatings rejects unknown source", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the server")
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetRatings(context.Background(),
			"tripadvisor", "2024-01-01", "2024-01-31", "")
		require.Error(t, err)

		validationErr := &pinmeto.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, pinmeto.ValidationInvalidSource, validationErr.Kind)
	})
}

func TestClient_Categories(t *testing.T) {
	t.Parallel()

	t.Run("categories stay on v2 for every network", func(t *testing.T) {
		t.Parallel()

		for _, network := range pinmeto.CategoryNetworks {
			network := network
			t.Run(network, func(t *testing.T) {
				t.Parallel()

				server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/v2/test-account/categories/"+network, r.URL.Path)

					_, _ = w.Write([]byte(`{"data":[]}`))
				})
				defer server.Close()

				body, err := newTestClient(server.URL).GetNetworkCategories(context.Background(), network)
				require.NoError(t, err)
				assert.JSONEq(t, `{"data":[]}`, string(body))
			})
		}
	})

	t.Run("rejects unknown network before dispatch", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the server")
		})
		defer server.Close()

		_, err := newTestClient(server.URL).GetNetworkCategories(context.Background(), "twitter")
		require.Error(t, err)

		validationErr := &pinmeto.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, pinmeto.ValidationInvalidNetwork, validationErr.Kind)
		assert.Equal(t, "twitter", validationErr.Value)
	})
}

func TestClient_TokenCaching(t *testing.T) {
	t.Parallel()

	t.Run("token fetched once across calls", func(t *testing.T) {
		t.Parallel()

		tokenCalls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/oauth/token" {
				tokenCalls++

				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token": "test-token",
					"expires_in":   3600,
				})

				return
			}

			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		pmClient := newTestClient(server.URL)

		for i := 0; i < 3; i++ {
			_, err := pmClient.GetLocations(context.Background(), nil)
			require.NoError(t, err)
		}

		assert.Equal(t, 1, tokenCalls)
	})

	t.Run("shared store reused across clients", func(t *testing.T) {
		t.Parallel()

		tokenCalls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/oauth/token" {
				tokenCalls++

				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token": "shared-token",
					"expires_in":   3600,
				})

				return
			}

			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		store := pinmeto.NewMemoryTokenStore()

		for i := 0; i < 2; i++ {
			pmClient := client.New(&pinmeto.Config{
				AppID:      "app-id",
				AppSecret:  "app-secret",
				AccountID:  "test-account",
				Mode:       pinmeto.ModeTest,
				TokenStore: store,
			}, server.URL)

			_, err := pmClient.GetLocations(context.Background(), nil)
			require.NoError(t, err)
		}

		assert.Equal(t, 1, tokenCalls)
	})
}
