package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a byte-oriented TTL cache. Implementations treat backend failures as misses.
//
// Generation counters never expire. Generation returns -1 when the counter cannot be read.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Delete(ctx context.Context, key string)

	Generation(ctx context.Context, key string) int64
	Bump(ctx context.Context, key string)
}

type Memory struct {
	mu   sync.RWMutex
	ttl  time.Duration
	m    map[string]entry
	gens map[string]int64
	now  func() time.Time
}

type entry struct {
	val []byte
	exp time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl:  ttl,
		m:    make(map[string]entry),
		gens: make(map[string]int64),
		now:  time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	now := c.now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.val, true
}

func (c *Memory) Set(_ context.Context, key string, val []byte) {
	c.mu.Lock()
	c.m[key] = entry{val: val, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Memory) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

func (c *Memory) Clear() {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Memory) Generation(_ context.Context, key string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gens[key]
}

func (c *Memory) Bump(_ context.Context, key string) {
	c.mu.Lock()
	c.gens[key]++
	c.mu.Unlock()
}
