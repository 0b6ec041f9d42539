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

// ProductSource 商品内容源适配器
type ProductSource struct {
	reader platform.CatalogReader
	lang   scanner.LanguageResolver
}

// NewProductSource 创建商品内容源
func NewProductSource(reader platform.CatalogReader, lang scanner.LanguageResolver) *ProductSource {
	return &ProductSource{reader: reader, lang: lang}
}

// Kind 返回内容源类型
func (s *ProductSource) Kind() scanner.SourceKind {
	return scanner.KindProduct
}

// Enumerate 枚举已发布商品
func (s *ProductSource) Enumerate(ctx context.Context, q scanner.Query) ([]interface{}, error) {
	records, err := s.reader.ListProducts(ctx, platform.ListQuery{
		Limit:      q.Limit,
		IncludeIDs: q.IncludeIDs,
		ExcludeIDs: q.ExcludeIDs,
	})
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(string(scanner.KindProduct), err)
	}

	items := make([]interface{}, len(records))
	for i, rec := range records {
		items[i] = rec
	}
	return items, nil
}

// MapItem 将商品记录映射为内容块，metadata包含价格、SKU与分类
func (s *ProductSource) MapItem(ctx context.Context, item interface{}) (*scanner.Chunk, error) {
	rec, ok := item.(platform.ProductRecord)
	if !ok {
		return nil, apperrors.NewItemMappingError(string(scanner.KindProduct), "unexpected item type")
	}

	if strings.TrimSpace(rec.Name) == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindProduct), fmt.Sprintf("product %d has no name", rec.ID))
	}

	content := joinSections(rec.Name, rec.ShortDescription, rec.Description)
	if content == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindProduct), fmt.Sprintf("product %d has no usable content", rec.ID))
	}

	metadata := map[string]interface{}{
		"price":         rec.Price,
		"regular_price": rec.RegularPrice,
		"sku":           rec.SKU,
		"stock_status":  rec.StockStatus,
	}
	if rec.SalePrice > 0 {
		metadata["sale_price"] = rec.SalePrice
	}
	if len(rec.Categories) > 0 {
		metadata["categories"] = rec.Categories
	}

	return &scanner.Chunk{
		ID:           strconv.FormatUint(uint64(rec.ID), 10),
		Type:         scanner.KindProduct,
		Title:        rec.Name,
		Content:      content,
		URL:          rec.Permalink,
		Metadata:     metadata,
		Language:     itemLanguage(rec.Language, s.lang),
		LastModified: rec.UpdatedAt,
	}, nil
}
