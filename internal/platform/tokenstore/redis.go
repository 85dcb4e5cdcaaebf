package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"prepforge/internal/common"
	"prepforge/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// ResetTokenStore keeps hashed password-reset tokens with a TTL.
// Consume is single-shot: a token can never be redeemed twice.
type ResetTokenStore interface {
	Save(ctx context.Context, digest, userID string, ttl time.Duration) error
	Consume(ctx context.Context, digest string) (userID string, err error)
}

const resetKeyPrefix = "pwreset:"

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

type redisResetTokenStore struct {
	rdb *redis.Client
}

func NewRedisResetTokenStore(rdb *redis.Client) ResetTokenStore {
	return &redisResetTokenStore{rdb: rdb}
}

func (s *redisResetTokenStore) Save(ctx context.Context, digest, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, resetKeyPrefix+digest, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redisResetTokenStore.Save: %w", err)
	}
	return nil
}

func (s *redisResetTokenStore) Consume(ctx context.Context, digest string) (string, error) {
	// GETDEL makes redemption atomic; an expired or reused token is indistinguishable.
	userID, err := s.rdb.GetDel(ctx, resetKeyPrefix+digest).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("reset token invalid or expired: %w", common.ErrBadRequest)
		}
		return "", fmt.Errorf("redisResetTokenStore.Consume: %w", err)
	}
	return userID, nil
}
