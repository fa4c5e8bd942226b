package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetTestRedisAddr returns the Redis address for tests and whether it answers PING.
// REDIS_ADDR wins; otherwise common CI and local addresses are tried in order.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr, pingRedis(t, addr)
	}
	for _, candidate := range []string{"redis:6379", "localhost:6379"} {
		if pingRedis(t, candidate) {
			return candidate, true
		}
	}
	const local = "localhost:56379"
	return local, pingRedis(t, local)
}

func pingRedis(t TestingTB, addr string) bool {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer closeAndLog(t, "redis ping client", client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Logf("Redis not available at %s: %v", addr, err)
		return false
	}
	return true
}

// selectTestRedisDB picks a DB index so parallel packages do not flush each other.
// TEST_REDIS_DB overrides; otherwise a DB in [1..15] is reserved through a lock key in DB 0.
func selectTestRedisDB(t TestingTB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
		t.Logf("Invalid TEST_REDIS_DB=%q, falling back to auto-select", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	defer closeAndLog(t, "redis meta client", meta)

	for i := 1; i <= 15; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lockKey := fmt.Sprintf("text2ture:testutil:db_lock:%d", i)
		lockVal := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
		ok, err := meta.SetNX(ctx, lockKey, lockVal, 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}

		t.Cleanup(func() {
			c := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
			defer closeAndLog(t, "redis cleanup client", c)
			cctx, ccancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer ccancel()
			if err := c.Del(cctx, lockKey).Err(); err != nil {
				t.Logf("warning: failed to release redis db lock %s: %v", lockKey, err)
			}
		})
		return i
	}
	return 1
}

// SetupTestRedis returns a client bound to a flushed, reserved test DB.
// Tests are skipped if Redis is not available.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		skipOrFail(t, requireRedis(), "Redis not available for testing")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: selectTestRedisDB(t, addr)})
	t.Cleanup(func() { closeAndLog(t, "redis client", client) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		skipOrFail(t, requireRedis(), "Redis not usable for testing:", err)
	}
	return client
}
