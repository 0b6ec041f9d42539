package scanner

import (
	"context"
)

// Query 传递给内容源适配器的枚举条件
type Query struct {
	Limit                  int
	IncludeIDs             []string
	ExcludeIDs             []string
	IncludeLegalPages      bool
	IncludeSettingSections bool
}

// Source 内容源适配器接口，每种内容类型实现一次。
// Enumerate整体失败视为内容源不可用，由扫描器上浮；
// MapItem单条失败由扫描器跳过该条并继续，不对外暴露
type Source interface {
	// Kind 返回内容源类型
	Kind() SourceKind
	// Enumerate 枚举至多Limit条原始记录，需已应用ID过滤
	Enumerate(ctx context.Context, q Query) ([]interface{}, error)
	// MapItem 将一条原始记录映射为规范化内容块
	MapItem(ctx context.Context, item interface{}) (*Chunk, error)
}

// LanguageResolver 语言解析器接口，映射时为内容块打语言标签
type LanguageResolver interface {
	// IsMultilingualActive 商城是否启用多语言
	IsMultilingualActive() bool
	// CurrentLanguage 当前扫描上下文的语言码
	CurrentLanguage() string
}
