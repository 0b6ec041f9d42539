package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/platform"
	"github.com/aihub/storescan-go/internal/scanner"
)

// SettingSource 商城配置内容源适配器。每个逻辑配置组合成一个内容块，
// 而不是每条数据库记录一个
type SettingSource struct {
	reader platform.SettingsReader
	lang   scanner.LanguageResolver
}

// NewSettingSource 创建配置内容源
func NewSettingSource(reader platform.SettingsReader, lang scanner.LanguageResolver) *SettingSource {
	return &SettingSource{reader: reader, lang: lang}
}

// Kind 返回内容源类型
func (s *SettingSource) Kind() scanner.SourceKind {
	return scanner.KindSetting
}

// Enumerate 枚举配置组。未开启子项展开时只保留general组，
// 语言配置组始终不参与扫描
func (s *SettingSource) Enumerate(ctx context.Context, q scanner.Query) ([]interface{}, error) {
	groups, err := s.reader.ListSettingGroups(ctx)
	if err != nil {
		return nil, apperrors.NewSourceUnavailable(string(scanner.KindSetting), err)
	}

	items := make([]interface{}, 0, len(groups))
	for _, group := range groups {
		if group.Group == "languages" {
			continue
		}
		if !q.IncludeSettingSections && group.Group != "general" {
			continue
		}
		items = append(items, group)
		if q.Limit > 0 && len(items) >= q.Limit {
			break
		}
	}
	return items, nil
}

// MapItem 将配置组映射为内容块，内容为key: value行
func (s *SettingSource) MapItem(ctx context.Context, item interface{}) (*scanner.Chunk, error) {
	group, ok := item.(platform.SettingGroup)
	if !ok {
		return nil, apperrors.NewItemMappingError(string(scanner.KindSetting), "unexpected item type")
	}

	if group.Group == "" {
		return nil, apperrors.NewItemMappingError(string(scanner.KindSetting), "setting group has no name")
	}
	if len(group.Values) == 0 {
		return nil, apperrors.NewItemMappingError(string(scanner.KindSetting), fmt.Sprintf("setting group %q is empty", group.Group))
	}

	// key排序保证内容稳定，缓存命中与强制刷新产出一致
	keys := make([]string, 0, len(group.Values))
	for k := range group.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, group.Values[k]))
	}

	title := fmt.Sprintf("Store settings: %s", group.Group)
	return &scanner.Chunk{
		ID:      group.Group,
		Type:    scanner.KindSetting,
		Title:   title,
		Content: joinSections(title, strings.Join(lines, "\n")),
		URL:     "",
		Metadata: map[string]interface{}{
			"group":        group.Group,
			"option_count": len(group.Values),
		},
		Language:     s.lang.CurrentLanguage(),
		LastModified: group.UpdatedAt,
	}, nil
}
