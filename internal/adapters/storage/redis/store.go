package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/SscSPs/financeflow/internal/apperrors"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
)

// Store keeps each blob as a plain Redis string without expiry. SET replaces the value
// in one command, which gives the atomic save the journal needs.
type Store struct {
	client goredis.Cmdable
	prefix string
}

// Option configures the store.
type Option func(*Store)

// WithKeyPrefix namespaces every key, e.g. "financeflow:".
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewStore wraps an existing client.
func NewStore(client goredis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClient connects to the server at a redis:// URL and pings it.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

var _ portsrepo.BlobStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("blob %q: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %q: %w", key, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to set blob %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
