package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry 内存缓存条目
type memoryEntry struct {
	value     []byte
	expiresAt time.Time // 零值表示不过期
}

// MemoryStore 进程内缓存实现，在Redis不可用时作为降级方案，也用于测试
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   *hitStats
	now     func() time.Time
}

// NewMemoryStore 创建内存缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		stats:   &hitStats{},
		now:     time.Now,
	}
}

// Get 读取缓存值，过期条目视为未命中并被删除
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.stats.recordMiss()
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		m.stats.recordMiss()
		return nil, false, nil
	}

	m.stats.recordHit()

	// 返回副本，避免调用方修改缓存内容
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set 写入缓存值并设置过期时间
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Flush 清空全部缓存条目
func (m *MemoryStore) Flush(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Stats 返回命中率统计
func (m *MemoryStore) Stats() Stats {
	return m.stats.snapshot()
}

// Len 返回当前条目数（测试用）
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
