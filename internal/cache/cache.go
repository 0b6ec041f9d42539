package cache

import (
	"context"
	"sync"
	"time"
)

// Store 带TTL的键值缓存接口，扫描器用它避免重复读取内容库
type Store interface {
	// Get 读取键值，第二个返回值表示是否命中
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set 写入键值并设置过期时间，ttl为0表示不过期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Flush 清空本子系统的全部缓存条目
	Flush(ctx context.Context) error
	// Stats 返回命中率统计
	Stats() Stats
}

// Stats 缓存命中率统计快照
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// hitStats 缓存命中率统计
type hitStats struct {
	hits   int64
	misses int64
	mu     sync.RWMutex
}

// recordHit 记录缓存命中
func (s *hitStats) recordHit() {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

// recordMiss 记录缓存未命中
func (s *hitStats) recordMiss() {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}

// snapshot 获取统计快照
func (s *hitStats) snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Hits: s.hits, Misses: s.misses}
	total := s.hits + s.misses
	if total > 0 {
		stats.HitRate = float64(s.hits) / float64(total)
	}
	return stats
}
