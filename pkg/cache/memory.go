package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Memory struct {
	store *gocache.Cache
}

// интервал очистки 0 - без фоновой горутины, просроченное просто перестает отдаваться
func NewMemory() *Memory {
	return &Memory{store: gocache.New(gocache.NoExpiration, 0)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), b...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}
