package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db, poolSize, minIdleConns int) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})

	return &RedisClient{client: client}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// TokenStore keeps the active session token per user. It backs the auth
// middleware of the HTTP layer; feed and notification reads never touch it.
type TokenStore struct {
	redis *RedisClient
	ttl   time.Duration
}

func NewTokenStore(redis *RedisClient, ttl time.Duration) *TokenStore {
	return &TokenStore{redis: redis, ttl: ttl}
}

func tokenKey(userID string) string {
	return fmt.Sprintf("session:token:%s", userID)
}

func (s *TokenStore) Save(ctx context.Context, userID, token string) error {
	return s.redis.Set(ctx, tokenKey(userID), token, s.ttl)
}

func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.redis.Get(ctx, tokenKey(userID))
	if err == redis.Nil {
		return "", nil
	}
	return token, err
}

func (s *TokenStore) Revoke(ctx context.Context, userID string) error {
	return s.redis.Delete(ctx, tokenKey(userID))
}
