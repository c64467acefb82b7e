package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/fileguard/pkg/watcher"
)

// 表格最多保留的记录数
const maxRows = 200

type model struct {
	dirs    []string
	sorter  Sorter
	table   table.Model
	spinner spinner.Model

	passes  int
	moved   int
	skipped int
	status  string
	lastErr error
	lastAt  time.Time
	closed  bool
}

func initialModel(cfg *Config) model {
	columns := []table.Column{
		{Title: "时间", Width: 8},
		{Title: "分类", Width: 12},
		{Title: "文件", Width: 32},
		{Title: "目录", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		dirs:    cfg.Dirs,
		sorter:  cfg.Sorter,
		table:   t,
		spinner: s,
		status:  "正在监控，等待新文件...",
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForReport(m.sorter.Reports()))
}

// waitForReport 读取下一条整理报告
func waitForReport(reports <-chan watcher.Report) tea.Cmd {
	return func() tea.Msg {
		report, ok := <-reports
		if !ok {
			return reportsClosedMsg{}
		}
		return reportMsg(report)
	}
}
