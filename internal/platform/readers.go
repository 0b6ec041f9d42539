package platform

import (
	"context"
	"time"
)

// ListQuery 分页查询条件，IncludeIDs/ExcludeIDs为内容ID过滤集合
type ListQuery struct {
	Limit      int
	IncludeIDs []string
	ExcludeIDs []string
}

// ProductRecord 商品原始记录
type ProductRecord struct {
	ID               uint
	Name             string
	Description      string
	ShortDescription string
	SKU              string
	Status           string
	Price            float64
	RegularPrice     float64
	SalePrice        float64
	StockStatus      string
	Categories       []string
	Permalink        string
	Language         string
	UpdatedAt        time.Time
}

// ContentRecord 页面/文章原始记录
type ContentRecord struct {
	ID          uint
	ContentType string
	Title       string
	Body        string
	Excerpt     string
	Status      string
	Template    string
	Permalink   string
	Language    string
	UpdatedAt   time.Time
}

// SettingGroup 配置组原始记录，每个逻辑配置组对应一条
type SettingGroup struct {
	Group     string
	Values    map[string]string
	UpdatedAt time.Time
}

// TermRecord 分类目录原始记录
type TermRecord struct {
	ID          uint
	Name        string
	Slug        string
	Taxonomy    string
	Description string
	Count       int
	Featured    bool
	Permalink   string
	Language    string
	UpdatedAt   time.Time
}

// LanguageConfig 多语言配置，单语言商城可能完全没有
type LanguageConfig struct {
	Multilingual bool
	Current      string
	Available    []string
}

// CatalogReader 商品目录读取接口
type CatalogReader interface {
	ListProducts(ctx context.Context, q ListQuery) ([]ProductRecord, error)
}

// ContentReader 页面/文章读取接口
type ContentReader interface {
	ListContent(ctx context.Context, contentType string, q ListQuery) ([]ContentRecord, error)
}

// SettingsReader 商城配置读取接口
type SettingsReader interface {
	ListSettingGroups(ctx context.Context) ([]SettingGroup, error)
}

// TaxonomyReader 分类目录读取接口
type TaxonomyReader interface {
	ListTerms(ctx context.Context, q ListQuery) ([]TermRecord, error)
}

// LanguageReader 多语言配置读取接口
type LanguageReader interface {
	// LanguageConfig 返回多语言配置，单语言商城返回nil
	LanguageConfig(ctx context.Context) (*LanguageConfig, error)
}
