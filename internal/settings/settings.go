// Package settings keeps the script endpoint URL that operators can change at
// runtime. The value survives restarts when Redis is configured.
package settings

import (
	"context"
	"sync"
)

type Store interface {
	PrimaryURL(ctx context.Context) (string, error)
	SetPrimaryURL(ctx context.Context, url string) error
	Close() error
}

// New picks the Redis store when redisURL is set and an in-memory one otherwise.
// fallback is returned until somebody stores a URL.
func New(redisURL, key, fallback string) (Store, error) {
	if redisURL == "" {
		return NewMemory(fallback), nil
	}
	return NewRedis(redisURL, key, fallback)
}

type Memory struct {
	mu  sync.RWMutex
	url string
}

func NewMemory(initial string) *Memory {
	return &Memory{url: initial}
}

func (m *Memory) PrimaryURL(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.url, nil
}

func (m *Memory) SetPrimaryURL(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
	return nil
}

func (m *Memory) Close() error {
	return nil
}
