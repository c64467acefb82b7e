package cmd

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/moyu-x/fileguard/app"
	"github.com/moyu-x/fileguard/pkg/classifier"
	"github.com/moyu-x/fileguard/pkg/reconciler"
)

func newTable(headers ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw
}

// categoryTable 按分类优先级列出本次移动的文件数，末行为合计
// 没有移动任何文件时返回空字符串
func categoryTable(result *reconciler.Result) string {
	counts := result.ByCategory()
	if len(counts) == 0 {
		return ""
	}

	tw := newTable("分类", "文件数")
	for _, category := range classifier.Categories {
		if n := counts[category]; n > 0 {
			tw.AppendRow(table.Row{string(category), n})
		}
	}
	tw.AppendFooter(table.Row{"合计", result.Moved()})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

// skipTable 列出被跳过的文件和原因，错误信息附在原因之后
func skipTable(skipped []reconciler.Skip) string {
	if len(skipped) == 0 {
		return ""
	}

	tw := newTable("跳过的文件", "原因")
	for _, skip := range skipped {
		reason := string(skip.Reason)
		if skip.Err != nil {
			reason += ": " + skip.Err.Error()
		}
		tw.AppendRow(table.Row{skip.Path, reason})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
	})
	return tw.Render()
}

// inventoryTable 分类目录中的文件，同一分类只在第一行显示分类名
func inventoryTable(placements []reconciler.Placement) string {
	tw := newTable("分类", "路径")
	for _, p := range placements {
		tw.AppendRow(table.Row{string(p.Category), p.Destination})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	return tw.Render()
}

func classifyTable(entries []app.ClassifyEntry) string {
	tw := newTable("名称", "分类", "类型提示")
	for _, entry := range entries {
		hint := entry.Hint
		if hint == "" {
			hint = "-"
		}
		tw.AppendRow(table.Row{entry.Name, string(entry.Category), hint})
	}
	return tw.Render()
}

// isTerminal 判断输出是否为交互终端
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
