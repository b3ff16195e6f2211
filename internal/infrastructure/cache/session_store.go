package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/helpers"
)

// SessionStore keeps sessions as Redis hashes under user:session:<id>.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess application.Session, ttl time.Duration) error {
	key := helpers.KeySession(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"email":      sess.Email,
		"name":       sess.Name,
		"sid":        sess.SessionID,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*application.Session, error) {
	data, err := s.rdb.HGetAll(ctx, helpers.KeySession(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &application.Session{
		UserID:    data["user_id"],
		Email:     data["email"],
		Name:      data["name"],
		SessionID: data["sid"],
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, helpers.KeySession(userID))
}

func (s *SessionStore) ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return helpers.RedisClaimOnce(ctx, s.rdb, key, ttl)
}
