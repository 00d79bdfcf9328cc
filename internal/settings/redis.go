package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	timeFormat   = "2006-01-02 15:04:05"
	fieldURL     = "web_app_url"
	fieldUpdated = "updated_dttm_utc"
)

type Redis struct {
	redis    *redis.Client
	key      string
	fallback string
}

func NewRedis(redisURL, key, fallback string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisWithClient(client, key, fallback), nil
}

func NewRedisWithClient(client *redis.Client, key, fallback string) *Redis {
	return &Redis{
		redis:    client,
		key:      key,
		fallback: fallback,
	}
}

func (r *Redis) PrimaryURL(ctx context.Context) (string, error) {
	url, err := r.redis.HGet(ctx, r.key, fieldURL).Result()
	if err == redis.Nil {
		return r.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	if url == "" || url == "undefined" {
		logger.Debug.Printf("Ignoring stored endpoint %q in %s", url, r.key)
		return r.fallback, nil
	}
	return url, nil
}

func (r *Redis) SetPrimaryURL(ctx context.Context, url string) error {
	err := r.redis.HSet(ctx, r.key, map[string]interface{}{
		fieldURL:     url,
		fieldUpdated: time.Now().UTC().Format(timeFormat),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.redis != nil {
		return r.redis.Close()
	}
	return nil
}
