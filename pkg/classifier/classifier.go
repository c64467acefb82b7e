package classifier

import (
	"path/filepath"
	"strings"
)

type Classifier struct {
	table *Table
}

func NewClassifier(table *Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

func (c *Classifier) Table() *Table {
	return c.table
}

// Classify 根据扩展名和类型提示判断分类
// 1. 扩展名精确匹配
// 2. 按 MIME 主类型回退
// 3. 都不命中时归为 Others
func (c *Classifier) Classify(ext, hint string) Category {
	if category, ok := c.table.Lookup(ext); ok {
		return category
	}
	if category, ok := categoryFromMIME(hint); ok {
		return category
	}
	return Others
}

// ClassifyName 对文件名分类，类型提示由调用方提供
func (c *Classifier) ClassifyName(name, hint string) Category {
	return c.Classify(filepath.Ext(name), hint)
}

func categoryFromMIME(hint string) (Category, bool) {
	mime := strings.ToLower(strings.TrimSpace(hint))
	if mime == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(mime, "audio/"):
		return Music, true
	case strings.HasPrefix(mime, "video/"):
		return Videos, true
	case strings.HasPrefix(mime, "image/"):
		return Pictures, true
	case strings.HasPrefix(mime, "text/"):
		return Documents, true
	case strings.HasPrefix(mime, "application/"):
		if strings.Contains(mime, "zip") || strings.Contains(mime, "x-rar") {
			return Compressed, true
		}
	}

	return "", false
}
