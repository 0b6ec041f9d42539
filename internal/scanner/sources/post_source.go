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

// PostSource 文章内容源适配器
type PostSource struct {
	reader platform.ContentReader
	lang   scanner.LanguageResolver
}

// NewPostSource 创建文章内容源
func NewPostSource(reader platform.ContentReader, lang scanner.LanguageResolver) *PostSource {
	return &PostSource{reader: reader, lang: lang}
}

// Kind 返回内容源类型
func (s *PostSource) Kind() scanner.SourceKind {
	return scanner.KindPost
}

// Enumerate 枚举已发布文章
func (s *PostSource) Enumerate(ctx context.Context, q scanner.Query) ([]interface{}, error) {
	records, err := s.reader.ListContent(ctx, "post", platform.ListQuery{
		Limit:      q.Limit,
		IncludeIDs: q.IncludeIDs,
		ExcludeIDs: q.ExcludeIDs,
	})
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(string(scanner.KindPost), err)
	}

	items := make([]interface{}, len(records))
	for i, rec := range records {
		items[i] = rec
	}
	return items, nil
}

// MapItem 将文章记录映射为内容块
func (s *PostSource) MapItem(ctx context.Context, item interface{}) (*scanner.Chunk, error) {
	rec, ok := item.(platform.ContentRecord)
	if !ok {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPost), "unexpected item type")
	}

	if strings.TrimSpace(rec.Title) == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPost), fmt.Sprintf("post %d has no title", rec.ID))
	}

	content := joinSections(rec.Title, rec.Excerpt, rec.Body)
	if content == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindPost), fmt.Sprintf("post %d has no usable content", rec.ID))
	}

	metadata := map[string]interface{}{
		"content_type": "post",
	}
	if rec.Excerpt != "" {
		metadata["excerpt"] = rec.Excerpt
	}

	return &scanner.Chunk{
		ID:           strconv.FormatUint(uint64(rec.ID), 10),
		Type:         scanner.KindPost,
		Title:        rec.Title,
		Content:      content,
		URL:          rec.Permalink,
		Metadata:     metadata,
		Language:     itemLanguage(rec.Language, s.lang),
		LastModified: rec.UpdatedAt,
	}, nil
}
