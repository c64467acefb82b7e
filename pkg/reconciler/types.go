package reconciler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moyu-x/fileguard/pkg/classifier"
)

// ErrDirectoryUnavailable 目标路径不存在或不是目录
var ErrDirectoryUnavailable = errors.New("directory unavailable")

// ConflictPolicy 目标位置已有同名文件时的处理方式
type ConflictPolicy string

const (
	ConflictSkip      ConflictPolicy = "skip"
	ConflictRename    ConflictPolicy = "rename"
	ConflictOverwrite ConflictPolicy = "overwrite"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ConflictSkip, ConflictRename, ConflictOverwrite:
		return p, nil
	case "":
		return ConflictSkip, nil
	default:
		return "", fmt.Errorf("无效的冲突处理方式: %q（可选 skip、rename、overwrite）", s)
	}
}

type SkipReason string

const (
	SkipVanished   SkipReason = "vanished"
	SkipConflict   SkipReason = "conflict"
	SkipIO         SkipReason = "io"
	SkipIncomplete SkipReason = "incomplete"
)

// Placement 一次成功的移动
type Placement struct {
	Category    classifier.Category
	Source      string
	Destination string
}

// Skip 本轮未移动的文件
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// Partition 分类到文件列表的映射，按分类优先级保持顺序
// 每轮重新构建，用完即弃
type Partition struct {
	order   []classifier.Category
	buckets map[classifier.Category][]string
}

func newPartition() *Partition {
	return &Partition{buckets: make(map[classifier.Category][]string)}
}

func (p *Partition) add(category classifier.Category, path string) {
	if _, ok := p.buckets[category]; !ok {
		p.order = append(p.order, category)
	}
	p.buckets[category] = append(p.buckets[category], path)
}

// Categories 非空分类，按 classifier.Categories 的顺序
func (p *Partition) Categories() []classifier.Category {
	out := make([]classifier.Category, 0, len(p.order))
	for _, c := range classifier.Categories {
		if len(p.buckets[c]) > 0 {
			out = append(out, c)
		}
	}
	// 自定义分类排在内置分类之后，保持出现顺序
	for _, c := range p.order {
		if _, builtin := classifier.ParseCategory(string(c)); !builtin {
			out = append(out, c)
		}
	}
	return out
}

func (p *Partition) Files(category classifier.Category) []string {
	return p.buckets[category]
}

func (p *Partition) Len() int {
	n := 0
	for _, files := range p.buckets {
		n += len(files)
	}
	return n
}

// Result 一轮整理的结果
type Result struct {
	Dir               string
	PassID            string
	CategoriesTouched int
	Placements        []Placement
	Skipped           []Skip
}

func (r *Result) Moved() int {
	return len(r.Placements)
}

// ByCategory 按分类统计成功移动的文件数
func (r *Result) ByCategory() map[classifier.Category]int {
	counts := make(map[classifier.Category]int)
	for _, p := range r.Placements {
		counts[p.Category]++
	}
	return counts
}
