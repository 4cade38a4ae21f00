package pinmeto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSTokenStoreConfig configures a NATS KV backed token store.
type NATSTokenStoreConfig struct {
	// URL is the NATS server URL (e.g. "nats://localhost:4222").
	URL string

	// Bucket is the KV bucket name. Created on first use if absent.
	Bucket string

	// Key is the key the token is stored under. Use one key per PinMeTo
	// account so clients for different accounts do not share tokens.
	Key string

	// CredsFile is an optional NATS credentials file.
	CredsFile string
}

// NATSTokenStore is a TokenStore backed by a NATS JetStream key-value
// bucket. Inject it into several client instances (or processes) to share
// one cached bearer token; the last writer wins on concurrent refresh, which
// matches the token cache semantics of the remote API.
type NATSTokenStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
	key  string
}

// NewNATSTokenStore connects to NATS and opens (or creates) the configured
// KV bucket.
func NewNATSTokenStore(config *NATSTokenStoreConfig) (*NATSTokenStore, error) {
	if config == nil || config.URL == "" || config.Bucket == "" || config.Key == "" {
		return nil, errors.New("nats token store requires URL, Bucket, and Key")
	}

	var opts []nats.Option
	if config.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	jetStream, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := jetStream.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = jetStream.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      config.Bucket,
			Description: "PinMeTo bearer token cache",
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSTokenStore{
		conn: conn,
		kv:   kv,
		key:  config.Key,
	}, nil
}

// Get returns the shared token, or nil when the key is absent.
func (s *NATSTokenStore) Get(ctx context.Context) (*TokenState, error) {
	entry, err := s.kv.Get(s.key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading token from KV: %w", err)
	}

	var token TokenState

	err = json.Unmarshal(entry.Value(), &token)
	if err != nil {
		return nil, fmt.Errorf("decoding stored token: %w", err)
	}

	return &token, nil
}

// Set stores the token for all sharers of the bucket.
func (s *NATSTokenStore) Set(ctx context.Context, token *TokenState) error {
	if token == nil {
		return s.Clear(ctx)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	_, err = s.kv.Put(s.key, data)
	if err != nil {
		return fmt.Errorf("writing token to KV: %w", err)
	}

	return nil
}

// Clear removes the shared token.
func (s *NATSTokenStore) Clear(ctx context.Context) error {
	err := s.kv.Delete(s.key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting token from KV: %w", err)
	}

	return nil
}

// Close drains the underlying NATS connection.
func (s *NATSTokenStore) Close() error {
	err := s.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
