// Package cache stores aggregated article listings between requests.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/factlens/config"
	"github.com/mohammad-safakhou/factlens/internal/metrics"
	"github.com/mohammad-safakhou/factlens/models"
)

// ErrLocked is returned by TryLock when another holder owns the key.
var ErrLocked = errors.New("cache: lock held elsewhere")

// Store caches article lists by key. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]models.NewsArticle, bool, error)
	Set(ctx context.Context, key string, articles []models.NewsArticle, ttl time.Duration) error
	// TryLock acquires key for ttl. The returned func releases it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error)
	Close() error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.CacheConfig, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[CACHE] ", log.LstdFlags)
	}
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "none":
		return Noop{}, nil
	case "redis":
		s, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		logger.Printf("using redis cache at %s", cfg.Redis.Addr())
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Instrument wraps s so lookups are counted under driver.
func Instrument(s Store, driver string) Store {
	return instrumented{Store: s, driver: driver}
}

type instrumented struct {
	Store
	driver string
}

func (i instrumented) Get(ctx context.Context, key string) ([]models.NewsArticle, bool, error) {
	articles, ok, err := i.Store.Get(ctx, key)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case ok:
		result = "hit"
	}
	metrics.CacheRequests.WithLabelValues(i.driver, result).Inc()
	return articles, ok, err
}

// Noop never stores anything. Locks always succeed.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]models.NewsArticle, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []models.NewsArticle, time.Duration) error { return nil }

func (Noop) TryLock(context.Context, string, time.Duration) (func(), error) { return func() {}, nil }

func (Noop) Close() error { return nil }
