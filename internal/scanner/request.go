package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// ScanRequest 单个内容源的扫描请求，所有字段可选
type ScanRequest struct {
	// Limit 本页最大条数，nil时使用扫描器的批量大小，0合法且返回空结果
	Limit *int `json:"limit,omitempty"`
	// ForceRefresh 跳过缓存读取但仍然回写缓存
	ForceRefresh bool `json:"force_refresh,omitempty"`
	// IncludeIDs 仅扫描这些ID
	IncludeIDs []string `json:"include_ids,omitempty"`
	// ExcludeIDs 排除这些ID
	ExcludeIDs []string `json:"exclude_ids,omitempty"`
	// IncludeLegalPages 页面源专用：是否包含法务/条款类页面
	IncludeLegalPages bool `json:"include_legal_pages,omitempty"`
	// IncludeSettingSections 配置源专用：是否展开配置组的全部子项
	IncludeSettingSections bool `json:"include_setting_sections,omitempty"`
}

// cacheKeyPayload 参与缓存键计算的规范化请求，不含force_refresh
type cacheKeyPayload struct {
	Kind                   SourceKind `json:"kind"`
	Limit                  int        `json:"limit"`
	IncludeIDs             []string   `json:"include_ids,omitempty"`
	ExcludeIDs             []string   `json:"exclude_ids,omitempty"`
	IncludeLegalPages      bool       `json:"include_legal_pages"`
	IncludeSettingSections bool       `json:"include_setting_sections"`
	Language               string     `json:"language"`
}

// cacheKey 计算确定性缓存键：同一(kind, 规范化请求, 语言)恒得同一键，
// ID集合排序后参与计算，顺序不影响结果
func cacheKey(kind SourceKind, req ScanRequest, effectiveLimit int, language string) string {
	payload := cacheKeyPayload{
		Kind:                   kind,
		Limit:                  effectiveLimit,
		IncludeIDs:             sortedCopy(req.IncludeIDs),
		ExcludeIDs:             sortedCopy(req.ExcludeIDs),
		IncludeLegalPages:      req.IncludeLegalPages,
		IncludeSettingSections: req.IncludeSettingSections,
		Language:               language,
	}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:])[:24])
}

// sortedCopy 返回排序后的副本，nil与空切片等价
func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
