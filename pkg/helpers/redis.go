package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client with short timeouts: callers fail
// open on Redis errors, so a slow server must not stall requests.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// KeySession holds the active session id for a user.
func KeySession(uid string) string {
	return "user:session:" + uid
}

// KeyUsedToken marks an action token id as consumed.
func KeyUsedToken(jti string) string {
	return "auth:used:" + jti
}

// KeyRateLimit is the fixed-window counter for a route and client.
func KeyRateLimit(name, ip string) string {
	return "rl:" + name + ":" + ip
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// RedisClaimOnce sets key only if absent. It reports false when the key was already taken.
func RedisClaimOnce(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, 1, ttl).Result()
}
