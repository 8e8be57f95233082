package redis

import (
	"context"
	"errors"
	"time"

	"github.com/megaJingHua/PixelGym/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	userSessionPrefix = "user_sessions:"
)

// redisSessionRepository implements repository.SessionRepository on Redis.
// Each issued token is stored under its token ID with the JWT lifetime as
// TTL; a per-user set holds every live token ID so DeleteAllForUser can
// revoke them in one sweep when an account is deleted.
type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a session store backed by the given
// Redis client. ttl should match the JWT expiration.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisSessionRepository{client: client, ttl: ttl}
}

// Connect opens and pings a Redis client.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *redisSessionRepository) Store(ctx context.Context, tokenID, userID string) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+tokenID, userID, r.ttl)
	pipe.SAdd(ctx, userSessionPrefix+userID, tokenID)
	pipe.Expire(ctx, userSessionPrefix+userID, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// UserID resolves a token ID to its user. ok is false for revoked or
// expired sessions.
func (r *redisSessionRepository) UserID(ctx context.Context, tokenID string) (string, bool, error) {
	v, err := r.client.Get(ctx, sessionKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, tokenID string) error {
	userID, ok, err := r.UserID(ctx, tokenID)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+tokenID)
	if ok {
		pipe.SRem(ctx, userSessionPrefix+userID, tokenID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteAllForUser revokes every live session of one user.
func (r *redisSessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	setKey := userSessionPrefix + userID
	tokenIDs, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, id := range tokenIDs {
		pipe.Del(ctx, sessionKeyPrefix+id)
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}
