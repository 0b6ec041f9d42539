package models

import (
	"time"
)

// StoreProduct 商品表
type StoreProduct struct {
	ProductID        uint      `gorm:"primaryKey;column:product_id" json:"product_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	ShortDescription string    `gorm:"type:text;column:short_description" json:"short_description"`
	SKU              string    `gorm:"size:100;column:sku;index" json:"sku"`
	Status           string    `gorm:"size:20;default:publish;index" json:"status"` // publish/draft/private
	Price            float64   `gorm:"type:numeric(12,2)" json:"price"`
	RegularPrice     float64   `gorm:"type:numeric(12,2);column:regular_price" json:"regular_price"`
	SalePrice        float64   `gorm:"type:numeric(12,2);column:sale_price" json:"sale_price"`
	StockStatus      string    `gorm:"size:20;column:stock_status;default:instock" json:"stock_status"`
	CategoryNames    string    `gorm:"type:text;column:category_names" json:"category_names"` // 逗号分隔的分类名
	Permalink        string    `gorm:"size:500" json:"permalink"`
	Language         string    `gorm:"size:10" json:"language"`
	UpdateTime       time.Time `gorm:"column:update_time" json:"update_time"`
}

func (StoreProduct) TableName() string {
	return "store_products"
}

// StoreContent 页面与文章共用的内容表，用content_type区分
type StoreContent struct {
	ContentID   uint      `gorm:"primaryKey;column:content_id" json:"content_id"`
	ContentType string    `gorm:"size:20;column:content_type;not null;index" json:"content_type"` // page/post
	Title       string    `gorm:"size:255;not null" json:"title"`
	Body        string    `gorm:"type:text" json:"body"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	Status      string    `gorm:"size:20;default:publish;index" json:"status"`
	Template    string    `gorm:"size:100" json:"template"` // 页面模板，如legal/faq/default
	Permalink   string    `gorm:"size:500" json:"permalink"`
	Language    string    `gorm:"size:10" json:"language"`
	UpdateTime  time.Time `gorm:"column:update_time" json:"update_time"`
}

func (StoreContent) TableName() string {
	return "store_contents"
}

// StoreSetting 商城配置表，按group_name组织
type StoreSetting struct {
	SettingID   uint      `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	GroupName   string    `gorm:"size:50;column:group_name;not null;index" json:"group_name"` // general/shipping/tax/languages
	OptionKey   string    `gorm:"size:100;column:option_key;not null" json:"option_key"`
	OptionValue string    `gorm:"type:text;column:option_value" json:"option_value"`
	UpdateTime  time.Time `gorm:"column:update_time" json:"update_time"`
}

func (StoreSetting) TableName() string {
	return "store_settings"
}

// StoreTerm 分类目录（taxonomy term）表
type StoreTerm struct {
	TermID      uint      `gorm:"primaryKey;column:term_id" json:"term_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Slug        string    `gorm:"size:200;index" json:"slug"`
	Taxonomy    string    `gorm:"size:50;not null;index" json:"taxonomy"` // product_cat/product_tag
	Description string    `gorm:"type:text" json:"description"`
	Count       int       `gorm:"default:0" json:"count"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	Permalink   string    `gorm:"size:500" json:"permalink"`
	Language    string    `gorm:"size:10" json:"language"`
	UpdateTime  time.Time `gorm:"column:update_time" json:"update_time"`
}

func (StoreTerm) TableName() string {
	return "store_terms"
}
