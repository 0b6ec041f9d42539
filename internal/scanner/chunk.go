package scanner

import (
	"fmt"
	"time"
)

// SourceKind 内容源类型
type SourceKind string

const (
	KindProduct  SourceKind = "product"
	KindPage     SourceKind = "page"
	KindPost     SourceKind = "post"
	KindSetting  SourceKind = "setting"
	KindTaxonomy SourceKind = "taxonomy_term"
)

// AllKinds 返回全部内容源类型，顺序即scanAll的固定扫描顺序
func AllKinds() []SourceKind {
	return []SourceKind{KindProduct, KindPage, KindPost, KindSetting, KindTaxonomy}
}

// IsValid 检查内容源类型是否合法
func (k SourceKind) IsValid() bool {
	switch k {
	case KindProduct, KindPage, KindPost, KindSetting, KindTaxonomy:
		return true
	}
	return false
}

// Chunk 规范化的内容块，是本管道产出的最小单元，
// 字段集合是与下游向量化阶段之间的稳定契约
type Chunk struct {
	ID           string                 `json:"id"`
	Type         SourceKind             `json:"type"`
	Title        string                 `json:"title"`
	Content      string                 `json:"content"`
	URL          string                 `json:"url"`
	Metadata     map[string]interface{} `json:"metadata"`
	Language     string                 `json:"language"`
	LastModified time.Time              `json:"last_modified"`
}

// Identity 内容块标识，恒为(type, id, language)三元组，
// 单语言商城下language为解析器的回退语言码
func (c *Chunk) Identity() string {
	return fmt.Sprintf("%s:%s:%s", c.Type, c.ID, c.Language)
}
