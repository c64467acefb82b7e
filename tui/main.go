package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/watcher"
)

// Sorter 终端界面需要的整理能力，由 watcher.Dispatcher 实现
type Sorter interface {
	Reports() <-chan watcher.Report
	SortNow(dir string) bool
}

type Config struct {
	Dirs   []string
	Sorter Sorter
}

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 阻塞运行监控面板，ctx 取消或按 q 时返回
func Run(ctx context.Context, cfg *Config) error {
	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel(cfg)
	p := tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
