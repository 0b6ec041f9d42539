package platform

import (
	"context"
	"sync"

	"github.com/aihub/storescan-go/internal/logger"
	"go.uber.org/zap"
)

// FallbackLanguage 单语言商城的默认语言码
const FallbackLanguage = "en"

// StoreLanguageResolver 从宿主商城读取多语言配置，读取失败或缺失时退回固定语言
// 配置在首次使用时读取一次并缓存，扫描过程中语言视为不变
type StoreLanguageResolver struct {
	reader   LanguageReader
	fallback string

	once sync.Once
	cfg  *LanguageConfig
}

// NewStoreLanguageResolver 创建语言解析器
func NewStoreLanguageResolver(reader LanguageReader, fallback string) *StoreLanguageResolver {
	if fallback == "" {
		fallback = FallbackLanguage
	}
	return &StoreLanguageResolver{
		reader:   reader,
		fallback: fallback,
	}
}

// IsMultilingualActive 商城是否启用多语言
func (r *StoreLanguageResolver) IsMultilingualActive() bool {
	cfg := r.load()
	return cfg != nil && cfg.Multilingual
}

// CurrentLanguage 当前扫描上下文的语言码
func (r *StoreLanguageResolver) CurrentLanguage() string {
	cfg := r.load()
	if cfg != nil && cfg.Current != "" {
		return cfg.Current
	}
	return r.fallback
}

// load 延迟读取多语言配置，只读一次
func (r *StoreLanguageResolver) load() *LanguageConfig {
	r.once.Do(func() {
		if r.reader == nil {
			return
		}
		cfg, err := r.reader.LanguageConfig(context.Background())
		if err != nil {
			logger.Warn("Failed to read language config, using fallback", zap.String("fallback", r.fallback), zap.Error(err))
			return
		}
		r.cfg = cfg
	})
	return r.cfg
}
