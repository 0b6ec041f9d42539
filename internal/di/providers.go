package di

import (
	"fmt"
	"time"

	"github.com/aihub/storescan-go/internal/cache"
	"github.com/aihub/storescan-go/internal/config"
	"github.com/aihub/storescan-go/internal/database"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/aihub/storescan-go/internal/metrics"
	"github.com/aihub/storescan-go/internal/platform"
	"github.com/aihub/storescan-go/internal/scanner"
	"github.com/aihub/storescan-go/internal/scanner/sources"
	"go.uber.org/dig"
)

// RegisterProviders 注册所有依赖提供者
func RegisterProviders(container *dig.Container) error {
	// 注册配置
	if err := container.Provide(func() (*config.Config, error) {
		cfg := config.GetAppConfig()
		if cfg == nil {
			return nil, fmt.Errorf("config not loaded")
		}
		return cfg, nil
	}); err != nil {
		return err
	}

	// 注册缓存：Redis可用时用Redis，否则降级为进程内缓存
	if err := container.Provide(func(cfg *config.Config) cache.Store {
		if cfg.Redis.Enabled && database.RedisClient != nil {
			return cache.NewRedisStore(database.RedisClient, cfg.Scanner.CachePrefix)
		}
		logger.Warn("Redis unavailable, using in-memory chunk cache")
		return cache.NewMemoryStore()
	}); err != nil {
		return err
	}

	// 注册内容库读取器
	if err := container.Provide(func() (*platform.GormStore, error) {
		if database.DB == nil {
			return nil, fmt.Errorf("database not initialized")
		}
		return platform.NewGormStore(database.DB), nil
	}); err != nil {
		return err
	}

	// 以接口形式暴露内容库读取能力
	if err := container.Provide(func(s *platform.GormStore) platform.CatalogReader { return s }); err != nil {
		return err
	}
	if err := container.Provide(func(s *platform.GormStore) platform.ContentReader { return s }); err != nil {
		return err
	}
	if err := container.Provide(func(s *platform.GormStore) platform.SettingsReader { return s }); err != nil {
		return err
	}
	if err := container.Provide(func(s *platform.GormStore) platform.TaxonomyReader { return s }); err != nil {
		return err
	}
	if err := container.Provide(func(s *platform.GormStore) platform.LanguageReader { return s }); err != nil {
		return err
	}

	// 注册语言解析器
	if err := container.Provide(func(cfg *config.Config, reader platform.LanguageReader) scanner.LanguageResolver {
		return platform.NewStoreLanguageResolver(reader, cfg.Store.DefaultLanguage)
	}); err != nil {
		return err
	}

	// 注册扫描指标
	if err := container.Provide(func(cfg *config.Config) *metrics.ScanMetrics {
		if !cfg.Prometheus.Enabled {
			return nil
		}
		return metrics.NewScanMetrics()
	}); err != nil {
		return err
	}

	// 注册内容源适配器
	if err := container.Provide(sources.NewProductSource); err != nil {
		return err
	}
	if err := container.Provide(sources.NewPageSource); err != nil {
		return err
	}
	if err := container.Provide(sources.NewPostSource); err != nil {
		return err
	}
	if err := container.Provide(sources.NewSettingSource); err != nil {
		return err
	}
	if err := container.Provide(sources.NewTaxonomySource); err != nil {
		return err
	}

	// 注册扫描器
	if err := container.Provide(func(
		cfg *config.Config,
		store cache.Store,
		lang scanner.LanguageResolver,
		m *metrics.ScanMetrics,
		products *sources.ProductSource,
		pages *sources.PageSource,
		posts *sources.PostSource,
		settings *sources.SettingSource,
		taxonomies *sources.TaxonomySource,
	) *scanner.Scanner {
		opts := scanner.Options{
			BatchSize:           cfg.Scanner.BatchSize,
			CacheTTL:            time.Duration(cfg.Scanner.CacheTTLSeconds) * time.Second,
			DefaultIncludePosts: cfg.Scanner.IncludePosts,
		}
		return scanner.NewScanner(opts, store, lang, m, products, pages, posts, settings, taxonomies)
	}); err != nil {
		return err
	}

	return nil
}
