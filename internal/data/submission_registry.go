package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/text2ture/internal/core"
)

// RedisSubmissionRegistryOptions configures a RedisSubmissionRegistry.
type RedisSubmissionRegistryOptions struct {
	Client    redis.UniversalClient
	KeyPrefix string
	TTL       time.Duration
}

// RedisSubmissionRegistry records the first submission time of each UID with a TTL.
// Later submissions of the same UID inside the TTL keep the original timestamp.
type RedisSubmissionRegistry struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ core.SubmissionRegistry = (*RedisSubmissionRegistry)(nil)

// NewRedisSubmissionRegistry builds a registry over an existing Redis client.
func NewRedisSubmissionRegistry(opts RedisSubmissionRegistryOptions) *RedisSubmissionRegistry {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "text2ture:submission:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSubmissionRegistry{client: opts.Client, prefix: prefix, ttl: ttl}
}

func (r *RedisSubmissionRegistry) key(uid string) string {
	return r.prefix + uid
}

// Register stores at for uid unless a record already exists.
func (r *RedisSubmissionRegistry) Register(ctx context.Context, uid string, at time.Time) error {
	if strings.TrimSpace(uid) == "" {
		return errors.New("uid cannot be empty")
	}
	value := at.UTC().Format(time.RFC3339Nano)
	if err := r.client.SetArgs(ctx, r.key(uid), value, redis.SetArgs{Mode: "NX", TTL: r.ttl}).Err(); err != nil &&
		!errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis set nx: %w", err)
	}
	return nil
}

// SubmittedAt returns the recorded submission time and whether one exists.
func (r *RedisSubmissionRegistry) SubmittedAt(ctx context.Context, uid string) (time.Time, bool, error) {
	if strings.TrimSpace(uid) == "" {
		return time.Time{}, false, errors.New("uid cannot be empty")
	}
	raw, err := r.client.Get(ctx, r.key(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis get: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse submission time for %s: %w", uid, err)
	}
	return at, true, nil
}
