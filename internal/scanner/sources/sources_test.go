package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/platform"
	"github.com/aihub/storescan-go/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLang 测试用语言解析器
type stubLang struct {
	multilingual bool
	current      string
}

func (s *stubLang) IsMultilingualActive() bool { return s.multilingual }
func (s *stubLang) CurrentLanguage() string    { return s.current }

// stubReaders 实现全部读取接口的测试桩
type stubReaders struct {
	products []platform.ProductRecord
	contents []platform.ContentRecord
	groups   []platform.SettingGroup
	terms    []platform.TermRecord
	err      error

	lastContentType string
}

func (s *stubReaders) ListProducts(ctx context.Context, q platform.ListQuery) ([]platform.ProductRecord, error) {
	return s.products, s.err
}

func (s *stubReaders) ListContent(ctx context.Context, contentType string, q platform.ListQuery) ([]platform.ContentRecord, error) {
	s.lastContentType = contentType
	return s.contents, s.err
}

func (s *stubReaders) ListSettingGroups(ctx context.Context) ([]platform.SettingGroup, error) {
	return s.groups, s.err
}

func (s *stubReaders) ListTerms(ctx context.Context, q platform.ListQuery) ([]platform.TermRecord, error) {
	return s.terms, s.err
}

var testTime = time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)

func TestProductSourceMapItem(t *testing.T) {
	src := NewProductSource(&stubReaders{}, &stubLang{current: "en"})

	rec := platform.ProductRecord{
		ID:               101,
		Name:             "Ceramic Mug",
		Description:      "A sturdy ceramic mug.",
		ShortDescription: "Holds 350ml.",
		SKU:              "MUG-350",
		Price:            12.5,
		RegularPrice:     15.0,
		SalePrice:        12.5,
		StockStatus:      "instock",
		Categories:       []string{"Kitchen", "Gifts"},
		Permalink:        "https://store.example/product/ceramic-mug",
		UpdatedAt:        testTime,
	}

	chunk, err := src.MapItem(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, "101", chunk.ID)
	assert.Equal(t, scanner.KindProduct, chunk.Type)
	assert.Equal(t, "Ceramic Mug", chunk.Title)
	assert.Equal(t, "Ceramic Mug\n\nHolds 350ml.\n\nA sturdy ceramic mug.", chunk.Content)
	assert.Equal(t, rec.Permalink, chunk.URL)
	assert.Equal(t, "en", chunk.Language)
	assert.Equal(t, testTime, chunk.LastModified)

	assert.Equal(t, 12.5, chunk.Metadata["price"])
	assert.Equal(t, 15.0, chunk.Metadata["regular_price"])
	assert.Equal(t, "MUG-350", chunk.Metadata["sku"])
	assert.Equal(t, "instock", chunk.Metadata["stock_status"])
	assert.Equal(t, 12.5, chunk.Metadata["sale_price"])
	assert.Equal(t, []string{"Kitchen", "Gifts"}, chunk.Metadata["categories"])
}

func TestProductSourceMapItemOptionalMetadata(t *testing.T) {
	src := NewProductSource(&stubReaders{}, &stubLang{current: "en"})

	chunk, err := src.MapItem(context.Background(), platform.ProductRecord{
		ID:          7,
		Name:        "Plain Item",
		Description: "No sale, no categories.",
	})
	require.NoError(t, err)

	// 未打折且无分类时不出现对应metadata键
	assert.NotContains(t, chunk.Metadata, "sale_price")
	assert.NotContains(t, chunk.Metadata, "categories")
}

func TestProductSourceMapItemRejectsMalformed(t *testing.T) {
	src := NewProductSource(&stubReaders{}, &stubLang{current: "en"})
	ctx := context.Background()

	_, err := src.MapItem(ctx, platform.ProductRecord{ID: 1, Description: "no name"})
	assert.True(t, apperrors.IsItemMappingError(err))

	_, err = src.MapItem(ctx, platform.ProductRecord{ID: 2, Name: "   "})
	assert.True(t, apperrors.IsItemMappingError(err))

	_, err = src.MapItem(ctx, "not a record")
	assert.True(t, apperrors.IsItemMappingError(err))
}

func TestProductSourceEnumerateUnavailable(t *testing.T) {
	src := NewProductSource(&stubReaders{err: errors.New("connection refused")}, &stubLang{current: "en"})

	_, err := src.Enumerate(context.Background(), scanner.Query{Limit: 10})
	assert.True(t, apperrors.IsSourceUnavailable(err))
}

func TestProductSourceHonorsItemLanguage(t *testing.T) {
	src := NewProductSource(&stubReaders{}, &stubLang{multilingual: true, current: "de"})

	// 内容自带语言标签优先
	chunk, err := src.MapItem(context.Background(), platform.ProductRecord{
		ID: 1, Name: "Tasse", Description: "Eine Tasse.", Language: "fr",
	})
	require.NoError(t, err)
	assert.Equal(t, "fr", chunk.Language)

	// 无标签时回落到解析器的当前语言
	chunk, err = src.MapItem(context.Background(), platform.ProductRecord{
		ID: 2, Name: "Tasse", Description: "Eine Tasse.",
	})
	require.NoError(t, err)
	assert.Equal(t, "de", chunk.Language)
}

func TestPageSourceFiltersLegalPages(t *testing.T) {
	reader := &stubReaders{contents: []platform.ContentRecord{
		{ID: 1, Title: "About us", Body: "We sell mugs.", Template: ""},
		{ID: 2, Title: "Privacy policy", Body: "Legal text.", Template: "privacy-policy"},
		{ID: 3, Title: "Terms", Body: "Legal text.", Template: "terms"},
		{ID: 4, Title: "Shipping", Body: "Shipping info.", Template: "info"},
	}}
	src := NewPageSource(reader, &stubLang{current: "en"})
	ctx := context.Background()

	items, err := src.Enumerate(ctx, scanner.Query{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "page", reader.lastContentType)

	// 显式开启后法务页面参与扫描
	items, err = src.Enumerate(ctx, scanner.Query{Limit: 10, IncludeLegalPages: true})
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestPageSourceMapItem(t *testing.T) {
	src := NewPageSource(&stubReaders{}, &stubLang{current: "en"})

	chunk, err := src.MapItem(context.Background(), platform.ContentRecord{
		ID:        12,
		Title:     "About us",
		Body:      "We sell mugs.",
		Template:  "",
		Permalink: "https://store.example/about",
		UpdatedAt: testTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "12", chunk.ID)
	assert.Equal(t, scanner.KindPage, chunk.Type)
	assert.Equal(t, "About us\n\nWe sell mugs.", chunk.Content)
	assert.Equal(t, "default", chunk.Metadata["page_type"])
	assert.Equal(t, "2025-05-20 10:30:00", chunk.Metadata["last_modified"])
}

func TestPageSourceMapItemRejectsEmpty(t *testing.T) {
	src := NewPageSource(&stubReaders{}, &stubLang{current: "en"})
	ctx := context.Background()

	_, err := src.MapItem(ctx, platform.ContentRecord{ID: 1, Body: "no title"})
	assert.True(t, apperrors.IsItemMappingError(err))

	_, err = src.MapItem(ctx, platform.ContentRecord{ID: 2, Title: "Empty page"})
	assert.True(t, apperrors.IsItemMappingError(err))
}

func TestPostSourceMapItem(t *testing.T) {
	src := NewPostSource(&stubReaders{}, &stubLang{current: "en"})

	chunk, err := src.MapItem(context.Background(), platform.ContentRecord{
		ID:        33,
		Title:     "Care guide",
		Excerpt:   "How to care for your mug.",
		Body:      "Wash by hand.",
		Permalink: "https://store.example/blog/care-guide",
		UpdatedAt: testTime,
	})
	require.NoError(t, err)

	assert.Equal(t, scanner.KindPost, chunk.Type)
	assert.Equal(t, "Care guide\n\nHow to care for your mug.\n\nWash by hand.", chunk.Content)
	assert.Equal(t, "post", chunk.Metadata["content_type"])
	assert.Equal(t, "How to care for your mug.", chunk.Metadata["excerpt"])
}

func TestPostSourceEnumerateQueriesPosts(t *testing.T) {
	reader := &stubReaders{contents: []platform.ContentRecord{{ID: 1, Title: "A", Body: "B"}}}
	src := NewPostSource(reader, &stubLang{current: "en"})

	items, err := src.Enumerate(context.Background(), scanner.Query{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "post", reader.lastContentType)
}

func TestSettingSourceEnumerate(t *testing.T) {
	reader := &stubReaders{groups: []platform.SettingGroup{
		{Group: "general", Values: map[string]string{"store_name": "Mug Shop"}},
		{Group: "shipping", Values: map[string]string{"flat_rate": "5"}},
		{Group: "languages", Values: map[string]string{"current_language": "en"}},
		{Group: "payments", Values: map[string]string{"gateway": "stripe"}},
	}}
	src := NewSettingSource(reader, &stubLang{current: "en"})
	ctx := context.Background()

	// 默认只保留general组
	items, err := src.Enumerate(ctx, scanner.Query{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "general", items[0].(platform.SettingGroup).Group)

	// 展开子项后包含全部业务配置组，languages组仍被排除
	items, err = src.Enumerate(ctx, scanner.Query{Limit: 10, IncludeSettingSections: true})
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotEqual(t, "languages", item.(platform.SettingGroup).Group)
	}
}

func TestSettingSourceMapItem(t *testing.T) {
	src := NewSettingSource(&stubReaders{}, &stubLang{current: "en"})

	chunk, err := src.MapItem(context.Background(), platform.SettingGroup{
		Group: "general",
		Values: map[string]string{
			"store_name":    "Mug Shop",
			"currency":      "EUR",
			"store_address": "Berlin",
		},
		UpdatedAt: testTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "general", chunk.ID)
	assert.Equal(t, scanner.KindSetting, chunk.Type)
	assert.Equal(t, "Store settings: general", chunk.Title)
	// key按字母序排列，内容确定
	assert.Equal(t, "Store settings: general\n\ncurrency: EUR\nstore_address: Berlin\nstore_name: Mug Shop", chunk.Content)
	assert.Empty(t, chunk.URL)
	assert.Equal(t, "general", chunk.Metadata["group"])
	assert.Equal(t, 3, chunk.Metadata["option_count"])
}

func TestSettingSourceMapItemRejectsEmptyGroup(t *testing.T) {
	src := NewSettingSource(&stubReaders{}, &stubLang{current: "en"})
	ctx := context.Background()

	_, err := src.MapItem(ctx, platform.SettingGroup{Group: "general"})
	assert.True(t, apperrors.IsItemMappingError(err))

	_, err = src.MapItem(ctx, platform.SettingGroup{Values: map[string]string{"k": "v"}})
	assert.True(t, apperrors.IsItemMappingError(err))
}

func TestTaxonomySourceMapItem(t *testing.T) {
	src := NewTaxonomySource(&stubReaders{}, &stubLang{current: "en"})

	chunk, err := src.MapItem(context.Background(), platform.TermRecord{
		ID:          9,
		Name:        "Kitchen",
		Slug:        "kitchen",
		Taxonomy:    "product_cat",
		Description: "Everything for the kitchen.",
		Count:       14,
		Featured:    true,
		Permalink:   "https://store.example/category/kitchen",
		UpdatedAt:   testTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "9", chunk.ID)
	assert.Equal(t, scanner.KindTaxonomy, chunk.Type)
	assert.Equal(t, "Kitchen\n\nEverything for the kitchen.\n\nContains 14 products.", chunk.Content)
	assert.Equal(t, "product_cat", chunk.Metadata["taxonomy"])
	assert.Equal(t, "kitchen", chunk.Metadata["slug"])
	assert.Equal(t, 14, chunk.Metadata["count"])
	assert.Equal(t, true, chunk.Metadata["featured"])
}

func TestTaxonomySourceMapItemEmptyTerm(t *testing.T) {
	src := NewTaxonomySource(&stubReaders{}, &stubLang{current: "en"})

	// 无商品的分类不附加数量句子
	chunk, err := src.MapItem(context.Background(), platform.TermRecord{ID: 3, Name: "Empty", Count: 0})
	require.NoError(t, err)
	assert.Equal(t, "Empty", chunk.Content)

	_, err = src.MapItem(context.Background(), platform.TermRecord{ID: 4})
	assert.True(t, apperrors.IsItemMappingError(err))
}

func TestJoinSections(t *testing.T) {
	assert.Equal(t, "a\n\nb", joinSections("a", "", "  ", "b"))
	assert.Equal(t, "", joinSections("", "   "))
}
