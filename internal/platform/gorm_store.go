package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aihub/storescan-go/internal/models"
	"gorm.io/gorm"
)

// GormStore 基于gorm的内容库实现，实现所有Reader接口
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建内容库读取器
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListProducts 分页枚举已发布商品
func (s *GormStore) ListProducts(ctx context.Context, q ListQuery) ([]ProductRecord, error) {
	var rows []models.StoreProduct
	tx := s.db.WithContext(ctx).Where("status = ?", "publish").Order("product_id ASC")
	tx = applyIDFilter(tx, "product_id", q)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	records := make([]ProductRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ProductRecord{
			ID:               row.ProductID,
			Name:             row.Name,
			Description:      row.Description,
			ShortDescription: row.ShortDescription,
			SKU:              row.SKU,
			Status:           row.Status,
			Price:            row.Price,
			RegularPrice:     row.RegularPrice,
			SalePrice:        row.SalePrice,
			StockStatus:      row.StockStatus,
			Categories:       splitNames(row.CategoryNames),
			Permalink:        row.Permalink,
			Language:         row.Language,
			UpdatedAt:        row.UpdateTime,
		})
	}
	return records, nil
}

// ListContent 分页枚举指定类型的已发布内容
func (s *GormStore) ListContent(ctx context.Context, contentType string, q ListQuery) ([]ContentRecord, error) {
	var rows []models.StoreContent
	tx := s.db.WithContext(ctx).
		Where("content_type = ? AND status = ?", contentType, "publish").
		Order("content_id ASC")
	tx = applyIDFilter(tx, "content_id", q)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s content: %w", contentType, err)
	}

	records := make([]ContentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ContentRecord{
			ID:          row.ContentID,
			ContentType: row.ContentType,
			Title:       row.Title,
			Body:        row.Body,
			Excerpt:     row.Excerpt,
			Status:      row.Status,
			Template:    row.Template,
			Permalink:   row.Permalink,
			Language:    row.Language,
			UpdatedAt:   row.UpdateTime,
		})
	}
	return records, nil
}

// ListSettingGroups 按group_name聚合商城配置，每个逻辑配置组返回一条
func (s *GormStore) ListSettingGroups(ctx context.Context) ([]SettingGroup, error) {
	var rows []models.StoreSetting
	if err := s.db.WithContext(ctx).Order("group_name ASC, option_key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	// 保持group首次出现的顺序
	groupIndex := make(map[string]int)
	var groups []SettingGroup
	for _, row := range rows {
		idx, ok := groupIndex[row.GroupName]
		if !ok {
			idx = len(groups)
			groupIndex[row.GroupName] = idx
			groups = append(groups, SettingGroup{
				Group:  row.GroupName,
				Values: make(map[string]string),
			})
		}
		groups[idx].Values[row.OptionKey] = row.OptionValue
		if row.UpdateTime.After(groups[idx].UpdatedAt) {
			groups[idx].UpdatedAt = row.UpdateTime
		}
	}
	return groups, nil
}

// ListTerms 分页枚举分类目录
func (s *GormStore) ListTerms(ctx context.Context, q ListQuery) ([]TermRecord, error) {
	var rows []models.StoreTerm
	tx := s.db.WithContext(ctx).Order("term_id ASC")
	tx = applyIDFilter(tx, "term_id", q)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}

	records := make([]TermRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, TermRecord{
			ID:          row.TermID,
			Name:        row.Name,
			Slug:        row.Slug,
			Taxonomy:    row.Taxonomy,
			Description: row.Description,
			Count:       row.Count,
			Featured:    row.Featured,
			Permalink:   row.Permalink,
			Language:    row.Language,
			UpdatedAt:   row.UpdateTime,
		})
	}
	return records, nil
}

// LanguageConfig 从languages配置组读取多语言配置，没有该配置组时返回nil
func (s *GormStore) LanguageConfig(ctx context.Context) (*LanguageConfig, error) {
	var rows []models.StoreSetting
	if err := s.db.WithContext(ctx).Where("group_name = ?", "languages").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read language settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cfg := &LanguageConfig{}
	for _, row := range rows {
		switch row.OptionKey {
		case "multilingual_enabled":
			cfg.Multilingual = row.OptionValue == "true" || row.OptionValue == "1"
		case "current_language":
			cfg.Current = row.OptionValue
		case "available_languages":
			cfg.Available = splitNames(row.OptionValue)
		}
	}
	return cfg, nil
}

// applyIDFilter 应用ID包含/排除过滤
func applyIDFilter(tx *gorm.DB, column string, q ListQuery) *gorm.DB {
	if ids := parseIDs(q.IncludeIDs); len(ids) > 0 {
		tx = tx.Where(column+" IN ?", ids)
	}
	if ids := parseIDs(q.ExcludeIDs); len(ids) > 0 {
		tx = tx.Where(column+" NOT IN ?", ids)
	}
	return tx
}

// parseIDs 将字符串ID解析为整数ID，忽略非法值
func parseIDs(raw []string) []uint {
	ids := make([]uint, 0, len(raw))
	for _, v := range raw {
		if id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// splitNames 拆分逗号分隔的名称列表
func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
