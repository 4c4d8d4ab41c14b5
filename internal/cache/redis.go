package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/factlens/config"
	"github.com/mohammad-safakhou/factlens/models"
)

const keyPrefix = "factlens:"

// Redis shares cached listings and refresh locks between instances.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the server within cfg.Timeout.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{client: rdb}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]models.NewsArticle, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var articles []models.NewsArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return articles, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, articles []models.NewsArticle, ttl time.Duration) error {
	raw, err := json.Marshal(articles)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

// TryLock uses SET NX with a random token so a release never drops a lock
// that expired and was taken by someone else.
func (r *Redis) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lockKey := keyPrefix + "lock:" + key
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, r.client, []string{lockKey}, token).Err()
	}, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (r *Redis) Close() error { return r.client.Close() }
