package scanner

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aihub/storescan-go/internal/cache"
	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/aihub/storescan-go/internal/metrics"
	"go.uber.org/zap"
)

const (
	// DefaultBatchSize 默认批量大小
	DefaultBatchSize = 50
	// DefaultCacheTTL 默认缓存TTL（6小时）
	DefaultCacheTTL = 6 * time.Hour
)

// Options 扫描器初始配置
type Options struct {
	BatchSize           int
	CacheTTL            time.Duration
	DefaultIncludePosts bool
}

// Scanner 知识库内容扫描器，按内容源类型扫描商城内容并缓存结果。
// 每次进程构造一个实例，协作组件全部显式注入
type Scanner struct {
	store   cache.Store
	lang    LanguageResolver
	sources map[SourceKind]Source
	metrics *metrics.ScanMetrics

	mu                  sync.RWMutex
	batchSize           int
	cacheTTL            time.Duration
	defaultIncludePosts bool
}

// NewScanner 创建扫描器，非法的初始配置回落到默认值
func NewScanner(opts Options, store cache.Store, lang LanguageResolver, m *metrics.ScanMetrics, sources ...Source) *Scanner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.CacheTTL < 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	registry := make(map[SourceKind]Source, len(sources))
	for _, src := range sources {
		registry[src.Kind()] = src
	}

	return &Scanner{
		store:               store,
		lang:                lang,
		sources:             registry,
		metrics:             m,
		batchSize:           opts.BatchSize,
		cacheTTL:            opts.CacheTTL,
		defaultIncludePosts: opts.DefaultIncludePosts,
	}
}

// SetBatchSize 修改批量大小，只影响之后的扫描调用
func (s *Scanner) SetBatchSize(n int) error {
	if n <= 0 {
		return apperrors.NewInvalidArgument("batch size must be a positive integer")
	}
	s.mu.Lock()
	s.batchSize = n
	s.mu.Unlock()
	return nil
}

// SetCacheTTL 修改缓存TTL（秒），0表示不过期，只影响之后的扫描调用
func (s *Scanner) SetCacheTTL(seconds int) error {
	if seconds < 0 {
		return apperrors.NewInvalidArgument("cache ttl must not be negative")
	}
	s.mu.Lock()
	s.cacheTTL = time.Duration(seconds) * time.Second
	s.mu.Unlock()
	return nil
}

// Statistics 扫描器运行状态
type Statistics struct {
	BatchSize          int          `json:"batch_size"`
	CacheTTLSeconds    int          `json:"cache_ttl_seconds"`
	SupportedKinds     []SourceKind `json:"supported_kinds"`
	MultilingualActive bool         `json:"multilingual_active"`
	CurrentLanguage    string       `json:"current_language"`
	Cache              cache.Stats  `json:"cache"`
}

// GetStatistics 返回当前配置与缓存统计
func (s *Scanner) GetStatistics() Statistics {
	s.mu.RLock()
	batchSize := s.batchSize
	ttl := s.cacheTTL
	s.mu.RUnlock()

	kinds := make([]SourceKind, 0, len(s.sources))
	for _, kind := range AllKinds() {
		if _, ok := s.sources[kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	return Statistics{
		BatchSize:          batchSize,
		CacheTTLSeconds:    int(ttl / time.Second),
		SupportedKinds:     kinds,
		MultilingualActive: s.lang.IsMultilingualActive(),
		CurrentLanguage:    s.lang.CurrentLanguage(),
		Cache:              s.store.Stats(),
	}
}

// Scan 扫描单个内容源。先查缓存，未命中时枚举内容源、逐条映射为
// 内容块并回写缓存。直接调用时内容源不可用会整体失败
func (s *Scanner) Scan(ctx context.Context, kind SourceKind, req ScanRequest) ([]Chunk, error) {
	if !kind.IsValid() {
		return nil, apperrors.NewInvalidArgument("unknown source kind: " + string(kind))
	}

	source, ok := s.sources[kind]
	if !ok {
		return nil, apperrors.NewSourceUnavailable(string(kind), nil)
	}

	limit, err := s.effectiveLimit(req)
	if err != nil {
		return nil, err
	}

	language := s.lang.CurrentLanguage()
	key := cacheKey(kind, req, limit, language)

	// 缓存只是性能优化：读取失败按未命中处理，继续真实扫描
	if !req.ForceRefresh {
		if chunks, ok := s.readCache(ctx, kind, key); ok {
			s.observeScan(kind, "cache_hit", len(chunks), 0)
			return chunks, nil
		}
	}

	start := time.Now()
	chunks, err := s.scanFresh(ctx, source, kind, req, limit, language)
	if err != nil {
		s.observeScan(kind, "error", 0, time.Since(start))
		return nil, err
	}

	s.writeCache(ctx, kind, key, chunks)
	s.observeScan(kind, "scanned", len(chunks), time.Since(start))

	logger.Debug("Source scanned",
		zap.String("kind", string(kind)),
		zap.Int("chunks", len(chunks)),
		zap.String("language", language))
	return chunks, nil
}

// ScanProducts 扫描商品
func (s *Scanner) ScanProducts(ctx context.Context, req ScanRequest) ([]Chunk, error) {
	return s.Scan(ctx, KindProduct, req)
}

// ScanPages 扫描静态页面
func (s *Scanner) ScanPages(ctx context.Context, req ScanRequest) ([]Chunk, error) {
	return s.Scan(ctx, KindPage, req)
}

// ScanPosts 扫描文章
func (s *Scanner) ScanPosts(ctx context.Context, req ScanRequest) ([]Chunk, error) {
	return s.Scan(ctx, KindPost, req)
}

// ScanSettings 扫描商城配置
func (s *Scanner) ScanSettings(ctx context.Context, req ScanRequest) ([]Chunk, error) {
	return s.Scan(ctx, KindSetting, req)
}

// ScanTaxonomies 扫描分类目录
func (s *Scanner) ScanTaxonomies(ctx context.Context, req ScanRequest) ([]Chunk, error) {
	return s.Scan(ctx, KindTaxonomy, req)
}

// ScanAllOptions scanAll的内容源开关，nil表示使用默认值。
// 除文章默认关闭外其余默认开启
type ScanAllOptions struct {
	Products   *bool `json:"include_products,omitempty"`
	Pages      *bool `json:"include_pages,omitempty"`
	Posts      *bool `json:"include_posts,omitempty"`
	Settings   *bool `json:"include_settings,omitempty"`
	Taxonomies *bool `json:"include_taxonomies,omitempty"`
}

// ScanAll 按固定顺序扫描全部启用的内容源。单个内容源失败只记入
// 报告的errors并继续，保证调用方总能拿到其余内容源的结果
func (s *Scanner) ScanAll(ctx context.Context, opts ScanAllOptions) *Report {
	start := time.Now()
	report := newReport()

	for _, kind := range AllKinds() {
		if !s.kindEnabled(kind, opts) {
			continue
		}

		chunks, err := s.Scan(ctx, kind, ScanRequest{})
		if err != nil {
			logger.Warn("Source scan failed, continuing with remaining sources",
				zap.String("kind", string(kind)), zap.Error(err))
			report.addError(kind, err)
			continue
		}
		report.addResult(kind, chunks)
	}

	report.Duration = time.Since(start).Seconds()

	logger.Info("Scan completed",
		zap.Bool("success", report.Success),
		zap.Int("total_chunks", report.TotalChunks()),
		zap.Int("errors", len(report.Errors)),
		zap.Float64("duration_seconds", report.Duration))
	return report
}

// FlushCache 清空扫描缓存
func (s *Scanner) FlushCache(ctx context.Context) error {
	return s.store.Flush(ctx)
}

// kindEnabled 判断scanAll中某内容源是否启用
func (s *Scanner) kindEnabled(kind SourceKind, opts ScanAllOptions) bool {
	var flag *bool
	def := true
	switch kind {
	case KindProduct:
		flag = opts.Products
	case KindPage:
		flag = opts.Pages
	case KindPost:
		flag = opts.Posts
		def = s.defaultIncludePosts
	case KindSetting:
		flag = opts.Settings
	case KindTaxonomy:
		flag = opts.Taxonomies
	}
	if flag != nil {
		return *flag
	}
	return def
}

// effectiveLimit 解析有效的批量大小，nil用当前配置，负数非法
func (s *Scanner) effectiveLimit(req ScanRequest) (int, error) {
	if req.Limit == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.batchSize, nil
	}
	if *req.Limit < 0 {
		return 0, apperrors.NewInvalidArgument("limit must not be negative")
	}
	return *req.Limit, nil
}

// scanFresh 绕过缓存执行真实扫描：枚举、过滤、逐条映射。
// 单条映射失败跳过该条并继续，枚举失败整体上浮为内容源不可用
func (s *Scanner) scanFresh(ctx context.Context, source Source, kind SourceKind, req ScanRequest, limit int, language string) ([]Chunk, error) {
	chunks := []Chunk{}
	if limit == 0 {
		return chunks, nil
	}

	items, err := source.Enumerate(ctx, Query{
		Limit:                  limit,
		IncludeIDs:             req.IncludeIDs,
		ExcludeIDs:             req.ExcludeIDs,
		IncludeLegalPages:      req.IncludeLegalPages,
		IncludeSettingSections: req.IncludeSettingSections,
	})
	if err != nil {
		if apperrors.IsSourceUnavailable(err) {
			return nil, err
		}
		return nil, apperrors.NewSourceUnavailable(string(kind), err)
	}

	for _, item := range items {
		if len(chunks) >= limit {
			break
		}

		chunk, err := source.MapItem(ctx, item)
		if err != nil {
			// 单条内容损坏不能阻塞整页扫描，跳过并继续
			logger.Warn("Skipping unmappable item", zap.String("kind", string(kind)), zap.Error(err))
			if s.metrics != nil {
				s.metrics.ItemSkipped(string(kind))
			}
			continue
		}
		if chunk == nil {
			continue
		}

		if chunk.Language == "" {
			chunk.Language = language
		}
		chunks = append(chunks, *chunk)
	}

	return chunks, nil
}

// readCache 读取并解码缓存的内容块列表
func (s *Scanner) readCache(ctx context.Context, kind SourceKind, key string) ([]Chunk, bool) {
	raw, hit, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn("Cache read failed, falling back to fresh scan", zap.String("kind", string(kind)), zap.Error(err))
		return nil, false
	}
	if !hit {
		return nil, false
	}

	var chunks []Chunk
	if err := json.Unmarshal(raw, &chunks); err != nil {
		logger.Warn("Discarding corrupt cache entry", zap.String("kind", string(kind)), zap.Error(err))
		return nil, false
	}
	return chunks, true
}

// writeCache 编码并回写内容块列表，失败只告警不影响扫描结果
func (s *Scanner) writeCache(ctx context.Context, kind SourceKind, key string, chunks []Chunk) {
	raw, err := json.Marshal(chunks)
	if err != nil {
		logger.Warn("Failed to encode chunks for cache", zap.String("kind", string(kind)), zap.Error(err))
		return
	}

	s.mu.RLock()
	ttl := s.cacheTTL
	s.mu.RUnlock()

	if err := s.store.Set(ctx, key, raw, ttl); err != nil {
		logger.Warn("Failed to write cache entry", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// observeScan 上报扫描指标
func (s *Scanner) observeScan(kind SourceKind, result string, chunkCount int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveScan(string(kind), result, chunkCount, elapsed)
}
