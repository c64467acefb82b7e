package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/config"
	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/watcher"
	"github.com/moyu-x/fileguard/tui"
)

type WatchOptions struct {
	ConfigFile string
	// 为空时使用配置中的 watch.dirs
	Dirs        []string
	InitialSort bool
	TUI         bool
	Verbose     bool
}

// Session 一组监控目录及其调度器
type Session struct {
	Dirs       []string
	Source     *watcher.Source
	Dispatcher *watcher.Dispatcher
}

// StartWatch 开始监控 dirs，事件交给调度器处理
func StartWatch(ctx context.Context, cfg *config.Config, dirs []string) (*Session, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("没有可监控的目录")
	}

	fs := afero.NewOsFs()
	dispatcher, err := watcher.NewDispatcher(ctx, newDetector(cfg, fs), newReconciler(cfg, fs, cfg.ConflictPolicy()), cfg.Performance.Workers)
	if err != nil {
		return nil, fmt.Errorf("创建任务池失败: %w", err)
	}

	source, err := watcher.NewSource(dirs)
	if err != nil {
		dispatcher.Close()
		return nil, err
	}

	go dispatcher.Run(source.Events())
	go func() {
		for err := range source.Errors() {
			logger.Get().Error().Err(err).Msg("文件监控出错")
		}
	}()

	return &Session{
		Dirs:       source.Dirs(),
		Source:     source,
		Dispatcher: dispatcher,
	}, nil
}

// SortAll 立即整理全部监控目录
func (s *Session) SortAll() {
	for _, dir := range s.Dirs {
		s.Dispatcher.SortNow(dir)
	}
}

// Close 先停止事件源，再等待进行中的整理结束
func (s *Session) Close() {
	if err := s.Source.Close(); err != nil {
		logger.Get().Warn().Err(err).Msg("关闭文件监控失败")
	}
	s.Dispatcher.Close()
}

// RunWatch 阻塞监控目录，直到 ctx 取消或终端界面退出
func RunWatch(ctx context.Context, opts *WatchOptions) error {
	cfg, err := loadConfig(opts.ConfigFile, opts.Verbose, opts.TUI)
	if err != nil {
		return err
	}

	dirs := cfg.WatchDirs()
	if len(opts.Dirs) > 0 {
		dirs = make([]string, 0, len(opts.Dirs))
		for _, dir := range opts.Dirs {
			dirs = append(dirs, config.ExpandPath(dir))
		}
	}

	session, err := StartWatch(ctx, cfg, dirs)
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Get().Info().
		Strs("dirs", session.Dirs).
		Int("workers", cfg.Performance.Workers).
		Str("on_conflict", string(cfg.ConflictPolicy())).
		Msg("开始监控")

	if opts.InitialSort || cfg.Watch.InitialSort {
		session.SortAll()
	}

	if opts.TUI {
		return tui.Run(ctx, &tui.Config{Dirs: session.Dirs, Sorter: session.Dispatcher})
	}

	logReports(ctx, session.Dispatcher.Reports())
	logger.Get().Info().Msg("收到退出信号，停止监控")
	return nil
}

func logReports(ctx context.Context, reports <-chan watcher.Report) {
	for {
		select {
		case <-ctx.Done():
			return
		case report, ok := <-reports:
			if !ok {
				return
			}
			logReport(report)
		}
	}
}

func logReport(report watcher.Report) {
	if report.Err != nil {
		logger.Get().Error().Err(report.Err).Str("dir", report.Dir).Msg("整理失败")
		return
	}

	result := report.Result
	logger.Get().Debug().
		Str("dir", report.Dir).
		Str("trigger", report.Trigger).
		Int("moved", result.Moved()).
		Int("skipped", len(result.Skipped)).
		Int("categories", result.CategoriesTouched).
		Msg("整理完成")

	for _, p := range result.Placements {
		logger.Get().Info().Str("category", string(p.Category)).Str("file", p.Destination).Msg("已归档")
	}
}
