package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"CryptoSentinel/internal/model"
)

const redisPrefix = "cryptosentinel:series:"

// Redis stores series as JSON with a TTL so repeated runs share fetched history.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (*model.PriceSeries, bool, error) {
	data, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var s model.PriceSeries
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("decode cached series %s: %w", key, err)
	}
	return &s, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, series *model.PriceSeries) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series %s: %w", key, err)
	}
	return r.client.Set(ctx, redisPrefix+key, data, r.ttl).Err()
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
