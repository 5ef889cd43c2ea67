package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed save can block its key.
	pendingTTL    = 30 * time.Second
	pendingMarker = "pending"
	reserveTries  = 2
)

// IdempotencyStore maps client-supplied Idempotency-Key headers to the
// transaction they produced, per wallet.
// Key format: idem:tx:<wallet>:<key>
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve claims key with SETNX. If the key is taken, the stored value is
// returned, with the pending marker reported as an empty txID.
func (s *IdempotencyStore) Reserve(ctx context.Context, wallet, key string) (string, bool, error) {
	k := s.key(wallet, key)
	for i := 0; i < reserveTries; i++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.pendingTTL).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return "", true, nil
		}

		id, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if id == pendingMarker {
			return "", false, nil
		}
		return id, false, nil
	}
	return "", false, nil
}

// Complete replaces the pending marker with txID for the full TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, wallet, key, txID string) error {
	if err := s.client.Set(ctx, s.key(wallet, key), txID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the key so the client can retry with it.
func (s *IdempotencyStore) Release(ctx context.Context, wallet, key string) error {
	if err := s.client.Del(ctx, s.key(wallet, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(wallet, key string) string {
	return fmt.Sprintf("idem:tx:%s:%s", wallet, key)
}
