package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/watcher"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.sortNow()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case reportMsg:
		m.applyReport(watcher.Report(msg))
		return m, waitForReport(m.sorter.Reports())

	case reportsClosedMsg:
		m.closed = true
		m.status = "监控已停止"
		return m, nil

	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) sortNow() {
	if m.closed {
		return
	}

	requested := 0
	for _, dir := range m.dirs {
		if m.sorter.SortNow(dir) {
			requested++
		}
	}

	m.status = fmt.Sprintf("已请求立即整理 %d 个目录", requested)
	logger.Get().Info().Int("dirs", requested).Msg("手动触发整理")
}

func (m *model) applyReport(report watcher.Report) {
	m.passes++
	m.lastAt = report.At

	if report.Err != nil {
		m.lastErr = report.Err
		m.status = fmt.Sprintf("整理 %s 失败", report.Dir)
		return
	}
	if report.Result == nil {
		return
	}

	result := report.Result
	m.moved += result.Moved()
	m.skipped += len(result.Skipped)

	rows := make([]table.Row, 0, len(result.Placements))
	for i := len(result.Placements) - 1; i >= 0; i-- {
		p := result.Placements[i]
		rows = append(rows, table.Row{
			report.At.Format("15:04:05"),
			string(p.Category),
			filepath.Base(p.Destination),
			report.Dir,
		})
	}
	rows = append(rows, m.table.Rows()...)
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	m.table.SetRows(rows)

	switch {
	case result.Moved() > 0:
		m.status = fmt.Sprintf("已整理 %d 个文件到 %d 个分类", result.Moved(), result.CategoriesTouched)
	case len(result.Skipped) > 0:
		m.status = fmt.Sprintf("跳过 %d 个文件", len(result.Skipped))
	default:
		m.status = "没有需要整理的文件"
	}
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	width, height := msg.Width, msg.Height

	m.table.SetWidth(width - 4)
	if h := height - 12; h > 3 {
		m.table.SetHeight(h)
	}
}
