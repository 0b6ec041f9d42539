package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubLanguageReader 测试用多语言配置读取桩
type stubLanguageReader struct {
	cfg   *LanguageConfig
	err   error
	calls int
}

func (s *stubLanguageReader) LanguageConfig(ctx context.Context) (*LanguageConfig, error) {
	s.calls++
	return s.cfg, s.err
}

func TestLanguageResolverMultilingual(t *testing.T) {
	reader := &stubLanguageReader{cfg: &LanguageConfig{
		Multilingual: true,
		Current:      "de",
		Available:    []string{"de", "en"},
	}}
	r := NewStoreLanguageResolver(reader, "en")

	assert.True(t, r.IsMultilingualActive())
	assert.Equal(t, "de", r.CurrentLanguage())
}

func TestLanguageResolverSingleLanguageStore(t *testing.T) {
	// 单语言商城没有多语言配置，回落到默认语言
	r := NewStoreLanguageResolver(&stubLanguageReader{cfg: nil}, "en")

	assert.False(t, r.IsMultilingualActive())
	assert.Equal(t, "en", r.CurrentLanguage())
}

func TestLanguageResolverReadFailure(t *testing.T) {
	reader := &stubLanguageReader{err: errors.New("settings table missing")}
	r := NewStoreLanguageResolver(reader, "en")

	assert.False(t, r.IsMultilingualActive())
	assert.Equal(t, "en", r.CurrentLanguage())
}

func TestLanguageResolverLoadsOnce(t *testing.T) {
	reader := &stubLanguageReader{cfg: &LanguageConfig{Multilingual: true, Current: "fr"}}
	r := NewStoreLanguageResolver(reader, "en")

	for i := 0; i < 5; i++ {
		r.CurrentLanguage()
		r.IsMultilingualActive()
	}
	assert.Equal(t, 1, reader.calls)
}

func TestLanguageResolverEmptyFallback(t *testing.T) {
	r := NewStoreLanguageResolver(nil, "")
	assert.Equal(t, FallbackLanguage, r.CurrentLanguage())
}

func TestLanguageResolverEmptyCurrentUsesFallback(t *testing.T) {
	reader := &stubLanguageReader{cfg: &LanguageConfig{Multilingual: true}}
	r := NewStoreLanguageResolver(reader, "en")

	assert.True(t, r.IsMultilingualActive())
	assert.Equal(t, "en", r.CurrentLanguage())
}
