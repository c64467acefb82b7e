package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/moyu-x/fileguard/pkg/logger"
)

// Event 被监控目录中新出现的条目
type Event struct {
	Dir   string
	Path  string
	IsDir bool
}

// Source 把 fsnotify 的创建事件转换为 Event，只监控目录第一层
type Source struct {
	watcher *fsnotify.Watcher
	dirs    []string
	events  chan Event
	errors  chan error
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewSource(dirs []string) (*Source, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控失败: %w", err)
	}

	s := &Source{
		watcher: w,
		events:  make(chan Event, 256),
		errors:  make(chan error, 16),
		done:    make(chan struct{}),
	}

	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			w.Close()
			return nil, fmt.Errorf("监控目录不可用: %s", dir)
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("添加监控目录失败 %s: %w", dir, err)
		}
		s.dirs = append(s.dirs, dir)
		logger.Get().Info().Str("dir", dir).Msg("开始监控目录")
	}

	s.wg.Add(1)
	go s.loop()

	return s, nil
}

func (s *Source) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

func (s *Source) Events() <-chan Event {
	return s.events
}

func (s *Source) Errors() <-chan error {
	return s.errors
}

func (s *Source) loop() {
	defer s.wg.Done()
	defer close(s.events)
	defer close(s.errors)

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}

			isDir := false
			if info, err := os.Lstat(ev.Name); err == nil {
				isDir = info.IsDir()
			}

			select {
			case s.events <- Event{Dir: filepath.Dir(ev.Name), Path: ev.Name, IsDir: isDir}:
			case <-s.done:
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			default:
				logger.Get().Error().Err(err).Msg("文件监控出错")
			}
		}
	}
}

// Close 停止监控，Events 和 Errors 随后关闭
func (s *Source) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
		logger.Get().Info().Msg("已停止目录监控")
	})
	return err
}
