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

// legalTemplates 法务/条款类页面模板，默认不参与扫描
var legalTemplates = map[string]bool{
	"legal":          true,
	"privacy-policy": true,
	"terms":          true,
	"refund-policy":  true,
}

// PageSource 静态页面内容源适配器
type PageSource struct {
	reader platform.ContentReader
	lang   scanner.LanguageResolver
}

// NewPageSource 创建页面内容源
func NewPageSource(reader platform.ContentReader, lang scanner.LanguageResolver) *PageSource {
	return &PageSource{reader: reader, lang: lang}
}

// Kind 返回内容源类型
func (s *PageSource) Kind() scanner.SourceKind {
	return scanner.KindPage
}

// Enumerate 枚举已发布页面，除非显式开启，法务类页面被过滤掉
func (s *PageSource) Enumerate(ctx context.Context, q scanner.Query) ([]interface{}, error) {
	records, err := s.reader.ListContent(ctx, "page", platform.ListQuery{
		Limit:      q.Limit,
		IncludeIDs: q.IncludeIDs,
		ExcludeIDs: q.ExcludeIDs,
	})
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(string(scanner.KindPage), err)
	}

	items := make([]interface{}, 0, len(records))
	for _, rec := range records {
		if !q.IncludeLegalPages && legalTemplates[rec.Template] {
			continue
		}
		items = append(items, rec)
	}
	return items, nil
}

// MapItem 将页面记录映射为内容块，metadata包含页面类型与最后修改时间
func (s *PageSource) MapItem(ctx context.Context, item interface{}) (*scanner.Chunk, error) {
	rec, ok := item.(platform.ContentRecord)
	if !ok {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPage), "unexpected item type")
	}

	if strings.TrimSpace(rec.Title) == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPage), fmt.Sprintf("page %d has no title", rec.ID))
	}
	if strings.TrimSpace(rec.Body) == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPage), fmt.Sprintf("page %d has no content", rec.ID))
	}

	pageType := rec.Template
	if pageType == "" {
		pageType = "default"
	}

	return &scanner.Chunk{
		ID:      strconv.FormatUint(uint64(rec.ID), 10),
		Type:    scanner.KindPage,
		Title:   rec.Title,
		Content: joinSections(rec.Title, rec.Body),
		URL:     rec.Permalink,
		Metadata: map[string]interface{}{
			"page_type":     pageType,
			"last_modified": rec.UpdatedAt.Format("2006-01-02 15:04:05"),
		},
		Language:     itemLanguage(rec.Language, s.lang),
		LastModified: rec.UpdatedAt,
	}, nil
}
