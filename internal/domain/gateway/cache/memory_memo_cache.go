package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"cep-api/internal/domain/model"
)

type memoEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryMemoCache keeps entries in process memory. Values are stored as JSON so callers
// always get their own copy.
type MemoryMemoCache struct {
	mu      sync.RWMutex
	entries map[string]memoEntry
	now     func() time.Time
}

var _ MemoCache = (*MemoryMemoCache)(nil)

func NewMemoryMemoCache() *MemoryMemoCache {
	return NewMemoryMemoCacheWithClock(time.Now)
}

// NewMemoryMemoCacheWithClock lets tests drive expiry.
func NewMemoryMemoCacheWithClock(now func() time.Time) *MemoryMemoCache {
	return &MemoryMemoCache{
		entries: make(map[string]memoEntry),
		now:     now,
	}
}

func (c *MemoryMemoCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryMemoCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = memoEntry{data: data, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryMemoCache) Purge(_ context.Context) (int, error) {
	now := c.now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (c *MemoryMemoCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoEntry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryMemoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryMemoCache) Health(_ context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"type":    "memory",
			"entries": strconv.Itoa(c.Len()),
		},
	}
}
