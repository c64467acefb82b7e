package reconciler

import (
	"path/filepath"

	"github.com/moyu-x/fileguard/pkg/classifier"
)

// Inventory 列出 dir 下各分类目录中当前的文件
// 返回的 Placement 只有 Category 和 Destination，按分类优先级排列
func (r *Reconciler) Inventory(dir string) ([]Placement, error) {
	if err := r.checkDir(dir); err != nil {
		return nil, err
	}

	subdirs, err := r.walker.Subdirs(dir)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(subdirs))
	for _, name := range subdirs {
		present[name] = true
	}

	var out []Placement
	for _, category := range r.categories() {
		if !present[string(category)] {
			continue
		}

		files, err := r.walker.Files(filepath.Join(dir, string(category)))
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			out = append(out, Placement{Category: category, Destination: path})
		}
	}

	return out, nil
}

// categories 映射表中的分类加上 Others
func (r *Reconciler) categories() []classifier.Category {
	seen := make(map[classifier.Category]bool)
	var out []classifier.Category
	for _, rule := range r.classifier.Table().Rules() {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			out = append(out, rule.Category)
		}
	}
	if !seen[classifier.Others] {
		out = append(out, classifier.Others)
	}
	return out
}
