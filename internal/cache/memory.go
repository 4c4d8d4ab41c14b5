package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/factlens/models"
)

type memoryItem struct {
	articles []models.NewsArticle
	expireAt time.Time
}

type memoryLock struct {
	token string
	until time.Time
}

// Memory is a process-local store. Expired entries are dropped lazily.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	locks map[string]memoryLock
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
		locks: make(map[string]memoryLock),
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]models.NewsArticle, bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || !m.now().Before(item.expireAt) {
		return nil, false, nil
	}
	return cloneArticles(item.articles), true, nil
}

func (m *Memory) Set(_ context.Context, key string, articles []models.NewsArticle, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, item := range m.items {
		if !now.Before(item.expireAt) {
			delete(m.items, k)
		}
	}
	m.items[key] = memoryItem{articles: cloneArticles(articles), expireAt: now.Add(ttl)}
	return nil
}

func (m *Memory) TryLock(_ context.Context, key string, ttl time.Duration) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if held, ok := m.locks[key]; ok && now.Before(held.until) {
		return nil, ErrLocked
	}
	token := uuid.NewString()
	m.locks[key] = memoryLock{token: token, until: now.Add(ttl)}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if held, ok := m.locks[key]; ok && held.token == token {
			delete(m.locks, key)
		}
	}, nil
}

func (m *Memory) Close() error { return nil }

// cloneArticles copies the slice and each image list so callers cannot
// mutate cached data.
func cloneArticles(in []models.NewsArticle) []models.NewsArticle {
	if in == nil {
		return nil
	}
	out := make([]models.NewsArticle, len(in))
	for i, a := range in {
		a.Images = append([]models.Image(nil), a.Images...)
		out[i] = a
	}
	return out
}
