package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/pinmeto-community/pinmeto-client/internal/http"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

func newTestAuthenticator(tokenURL string, store pinmeto.TokenStore) *Authenticator {
	authenticator := NewAuthenticator(&Config{
		TokenURL:  tokenURL,
		AppID:     "app-id",
		AppSecret: "app-secret",
		Store:     store,
	}, nil)
	authenticator.SetHTTPClient(internalhttp.NewClient(nil))

	return authenticator
}

func TestAuthenticator_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("exchanges client credentials with basic auth", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth/token", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "app-id", username)
			assert.Equal(t, "app-secret", password)

			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "fresh-token",
				"token_type":   "bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		store := pinmeto.NewMemoryTokenStore()
		authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)

		token, err := authenticator.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)

		cached, err := store.Get(context.Background())
		require.NoError(t, err)
		require.NotNil(t, cached)
		assert.Equal(t, "fresh-token", cached.AccessToken)
		assert.WithinDuration(t, time.Now().Add(3600*time.Second), cached.ExpiresAt, 5*time.Second)
	})

	t.Run("reuses valid cached token without network call", func(t *testing.T) {
		t.Parallel()

		calls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		store := pinmeto.NewMemoryTokenStore()
		err := store.Set(context.Background(), &pinmeto.TokenState{
			AccessToken: "cached-token",
			ExpiresAt:   time.Now().Add(1 * time.Hour),
		})
		require.NoError(t, err)

		authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)

		token, err := authenticator.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached-token", token)
		assert.Equal(t, 0, calls)
	})

	t.Run("expired cached token triggers exactly one refresh", func(t *testing.T) {
		t.Parallel()

		calls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "refreshed-token",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		store := pinmeto.NewMemoryTokenStore()
		err := store.Set(context.Background(), &pinmeto.TokenState{
			AccessToken: "expired-token",
			ExpiresAt:   time.Now().Add(-1 * time.Hour),
		})
		require.NoError(t, err)

		authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)

		token, err := authenticator.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "refreshed-token", token)
		assert.Equal(t, 1, calls)

		// The next call reuses the refreshed token.
		token, err = authenticator.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "refreshed-token", token)
		assert.Equal(t, 1, calls)
	})

	t.Run("response without access_token fails and leaves cache unchanged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
		}))
		defer server.Close()

		store := pinmeto.NewMemoryTokenStore()
		err := store.Set(context.Background(), &pinmeto.TokenState{
			AccessToken: "stale-token",
			ExpiresAt:   time.Now().Add(-1 * time.Hour),
		})
		require.NoError(t, err)

		authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)

		token, err := authenticator.GetToken(context.Background())
		require.Error(t, err)
		assert.Empty(t, token)
		assert.True(t, pinmeto.IsTokenMissing(err))

		cached, err := store.Get(context.Background())
		require.NoError(t, err)
		require.NotNil(t, cached)
		assert.Equal(t, "stale-token", cached.AccessToken)
	})

	t.Run("transport failure surfaces as classified error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		authenticator := newTestAuthenticator(server.URL+"/oauth/token", pinmeto.NewMemoryTokenStore())

		_, err := authenticator.GetToken(context.Background())
		require.Error(t, err)
		assert.True(t, pinmeto.IsConnectionFailed(err))
	})
}

func TestAuthenticator_RefreshToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "forced-token",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	store := pinmeto.NewMemoryTokenStore()
	err := store.Set(context.Background(), &pinmeto.TokenState{
		AccessToken: "still-valid",
		ExpiresAt:   time.Now().Add(1 * time.Hour),
	})
	require.NoError(t, err)

	authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)

	err = authenticator.RefreshToken(context.Background())
	require.NoError(t, err)

	token, err := authenticator.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "forced-token", token)
}

func TestAuthenticator_ExpiryUsesInjectedClock(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "clock-token",
			"expires_in":   60,
		})
	}))
	defer server.Close()

	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store := pinmeto.NewMemoryTokenStore()
	authenticator := newTestAuthenticator(server.URL+"/oauth/token", store)
	authenticator.now = func() time.Time { return fixed }

	_, err := authenticator.GetToken(context.Background())
	require.NoError(t, err)

	cached, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, fixed.Add(60*time.Second), cached.ExpiresAt)
}
