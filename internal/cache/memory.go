package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process cache holding at most maxEntries values. Expired
// entries are dropped when read and swept from the whole map at most once
// per TTL on write. When a new key arrives at capacity, the entry closest to
// expiry is evicted.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
	lastSweep  time.Time
	now        func() time.Time
}

// NewMemory creates an empty in-process cache. maxEntries <= 0 uses
// constants.DefaultCacheMaxEntries.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.ttl {
		m.sweep(now)
	}

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweep(now)
		if len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
	}

	m.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(m.ttl),
	}
	return nil
}

// sweep drops every expired entry. Callers hold m.mu.
func (m *Memory) sweep(now time.Time) {
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
	m.lastSweep = now
}

func (m *Memory) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range m.entries {
		if !found || entry.expiresAt.Before(oldest) {
			oldestKey, oldest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
