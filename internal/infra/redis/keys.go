package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/payguard/internal/idempotency"
)

// KeyRepo implements idempotency.Store using Redis.
type KeyRepo struct {
	client *Client
}

// NewKeyRepo creates a Redis-backed idempotency key repository.
func NewKeyRepo(client *Client) *KeyRepo {
	return &KeyRepo{client: client}
}

func (r *KeyRepo) recordKey(reference string) string {
	return r.client.key("idempotency", reference)
}

// Claim stores rec with SETNX; when another record already holds the
// reference, that record is returned instead.
func (r *KeyRepo) Claim(ctx context.Context, rec idempotency.Record, ttl time.Duration) (idempotency.Record, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return idempotency.Record{}, fmt.Errorf("failed to marshal record: %w", err)
	}

	key := r.recordKey(rec.Reference)
	ok, err := r.client.rdb.SetNX(ctx, key, data, ttl).Result()
	if err != nil {
		return idempotency.Record{}, fmt.Errorf("setnx failed: %w", err)
	}
	if ok {
		return rec, nil
	}

	existing, err := r.client.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; claim again.
		return r.Claim(ctx, rec, ttl)
	}
	if err != nil {
		return idempotency.Record{}, fmt.Errorf("get failed: %w", err)
	}

	var out idempotency.Record
	if err := json.Unmarshal(existing, &out); err != nil {
		return idempotency.Record{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return out, nil
}

// Release deletes the record for reference.
func (r *KeyRepo) Release(ctx context.Context, reference string) error {
	if err := r.client.rdb.Del(ctx, r.recordKey(reference)).Err(); err != nil {
		return fmt.Errorf("del failed: %w", err)
	}
	return nil
}
