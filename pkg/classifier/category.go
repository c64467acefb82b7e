package classifier

import (
	"fmt"
	"strings"
)

type Category string

const (
	Documents  Category = "Documents"
	Pictures   Category = "Pictures"
	Compressed Category = "Compressed"
	Videos     Category = "Videos"
	Music      Category = "Music"
	Others     Category = "Others"
)

// Categories 按优先级排列的全部分类，Others 永远在最后
var Categories = []Category{Documents, Pictures, Compressed, Videos, Music, Others}

func (c Category) String() string {
	return string(c)
}

// ParseCategory 按名称（忽略大小写）查找分类
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Rule 一个分类及其扩展名列表
type Rule struct {
	Category   Category
	Extensions []string
}

// Table 扩展名到分类的静态映射表
// 构造后不可修改；规则顺序即匹配优先级
type Table struct {
	rules []Rule
}

// DefaultRules 默认分类规则
func DefaultRules() []Rule {
	return []Rule{
		{Category: Documents, Extensions: []string{".pdf", ".docx", ".txt", ".xls", ".xlsx"}},
		{Category: Pictures, Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}},
		{Category: Compressed, Extensions: []string{".zip", ".rar", ".7z", ".gz"}},
		{Category: Videos, Extensions: []string{".mp4", ".mkv", ".avi", ".mov"}},
		{Category: Music, Extensions: []string{".mp3", ".wav", ".flac", ".aac"}},
	}
}

// NewTable 根据规则构建映射表
// 同一个扩展名出现在两个分类中属于配置错误
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{rules: make([]Rule, 0, len(rules))}
	owners := make(map[string]Category)

	for _, rule := range rules {
		if rule.Category == "" {
			return nil, fmt.Errorf("分类名称不能为空")
		}
		if rule.Category == Others {
			return nil, fmt.Errorf("%s 是兜底分类，不能配置扩展名", Others)
		}

		exts := make([]string, 0, len(rule.Extensions))
		for _, ext := range rule.Extensions {
			ext = normalizeExt(ext)
			if ext == "" {
				return nil, fmt.Errorf("分类 %s 包含空扩展名", rule.Category)
			}
			if owner, ok := owners[ext]; ok {
				return nil, fmt.Errorf("扩展名 %s 同时属于 %s 和 %s", ext, owner, rule.Category)
			}
			owners[ext] = rule.Category
			exts = append(exts, ext)
		}

		t.rules = append(t.rules, Rule{Category: rule.Category, Extensions: exts})
	}

	return t, nil
}

// DefaultTable 返回默认映射表
func DefaultTable() *Table {
	t, err := NewTable(DefaultRules())
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup 精确匹配扩展名（忽略大小写，包含前导点）
func (t *Table) Lookup(ext string) (Category, bool) {
	ext = strings.ToLower(ext)
	if ext == "" {
		return "", false
	}
	// 按声明顺序匹配，保证结果可复现
	for _, rule := range t.rules {
		for _, e := range rule.Extensions {
			if e == ext {
				return rule.Category, true
			}
		}
	}
	return "", false
}

// Rules 返回规则副本
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, rule := range t.rules {
		out[i] = Rule{Category: rule.Category, Extensions: append([]string(nil), rule.Extensions...)}
	}
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
