package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/classpulse/classpulse-api/pkg/errors"
)

const snapshotKeyPrefix = "snapshot:"

// SnapshotRepository holds the last known-good snapshot per collection key.
// There is no TTL and no eviction: each write replaces the whole snapshot.
type SnapshotRepository struct {
	client  *redis.Client
	logger  *zap.Logger
	observe func(time.Duration)
}

// NewSnapshotRepository constructs a snapshot repository. A nil client is
// allowed and degrades reads to misses and writes to no-ops. The observer, if
// present, receives the latency of each snapshot write.
func NewSnapshotRepository(client *redis.Client, logger *zap.Logger, observe func(time.Duration)) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{client: client, logger: logger, observe: observe}
}

// ReadSnapshot retrieves and unmarshals the stored snapshot into dest.
func (r *SnapshotRepository) ReadSnapshot(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrSnapshotMiss
	}

	raw, err := r.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrSnapshotMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal snapshot for %s: %w", key, err)
	}

	return nil
}

// WriteSnapshot marshals and stores the full collection snapshot, replacing
// the previous one.
func (r *SnapshotRepository) WriteSnapshot(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot for %s: %w", key, err)
	}

	start := time.Now()
	if err := r.client.Set(ctx, snapshotKeyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if r.observe != nil {
		r.observe(time.Since(start))
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (r *SnapshotRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
