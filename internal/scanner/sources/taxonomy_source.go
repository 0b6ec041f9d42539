package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/platform"
	"github.com/aihub/storescan-go/internal/scanner"
)

// TaxonomySource 分类目录内容源适配器
type TaxonomySource struct {
	reader platform.TaxonomyReader
	lang   scanner.LanguageResolver
}

// NewTaxonomySource 创建分类目录内容源
func NewTaxonomySource(reader platform.TaxonomyReader, lang scanner.LanguageResolver) *TaxonomySource {
	return &TaxonomySource{reader: reader, lang: lang}
}

// Kind 返回内容源类型
func (s *TaxonomySource) Kind() scanner.SourceKind {
	return scanner.KindTaxonomy
}

// Enumerate 枚举分类目录
func (s *TaxonomySource) Enumerate(ctx context.Context, q scanner.Query) ([]interface{}, error) {
	records, err := s.reader.ListTerms(ctx, platform.ListQuery{
		Limit:      q.Limit,
		IncludeIDs: q.IncludeIDs,
		ExcludeIDs: q.ExcludeIDs,
	})
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(string(scanner.KindTaxonomy), err)
	}

	items := make([]interface{}, len(records))
	for i, rec := range records {
		items[i] = rec
	}
	return items, nil
}

// MapItem 将分类记录映射为内容块，metadata包含商品数量与推荐标记
func (s *TaxonomySource) MapItem(ctx context.Context, item interface{}) (*scanner.Chunk, error) {
	rec, ok := item.(platform.TermRecord)
	if !ok {
		return nil, apperrors.NewItemMappingError(string(scanner.KindTaxonomy), "unexpected item type")
	}

	if strings.TrimSpace(rec.Name) == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindTaxonomy), fmt.Sprintf("term %d has no name", rec.ID))
	}

	content := joinSections(rec.Name, rec.Description)
	if rec.Count > 0 {
		content = joinSections(content, fmt.Sprintf("Contains %d products.", rec.Count))
	}

	return &scanner.Chunk{
		ID:      strconv.FormatUint(uint64(rec.ID), 10),
		Type:    scanner.KindTaxonomy,
		Title:   rec.Name,
		Content: content,
		URL:     rec.Permalink,
		Metadata: map[string]interface{}{
			"taxonomy": rec.Taxonomy,
			"slug":     rec.Slug,
			"count":    rec.Count,
			"featured": rec.Featured,
		},
		Language:     itemLanguage(rec.Language, s.lang),
		LastModified: rec.UpdatedAt,
	}, nil
}
