package app

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/pkg/classifier"
)

type ClassifyOptions struct {
	ConfigFile string
	Names      []string
	Verbose    bool
}

type ClassifyEntry struct {
	Name     string
	Hint     string
	Category classifier.Category
}

// RunClassify 只判断分类，不移动任何文件
// 名称不必对应真实文件；文件存在且开启内容识别时会读取文件头
func RunClassify(opts *ClassifyOptions) ([]ClassifyEntry, error) {
	cfg, err := loadConfig(opts.ConfigFile, opts.Verbose, false)
	if err != nil {
		return nil, err
	}

	cls := classifier.NewClassifier(classifier.DefaultTable())
	hints := newHints(cfg, afero.NewOsFs())

	entries := make([]ClassifyEntry, 0, len(opts.Names))
	for _, name := range opts.Names {
		var hint string
		if _, known := cls.Table().Lookup(filepath.Ext(name)); !known {
			hint = hints.Hint(name)
		}

		entries = append(entries, ClassifyEntry{
			Name:     name,
			Hint:     hint,
			Category: cls.ClassifyName(name, hint),
		})
	}

	return entries, nil
}
