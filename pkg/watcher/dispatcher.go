package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/moyu-x/fileguard/pkg/detector"
	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/reconciler"
)

// Report 一次整理的结果，Trigger 为空表示手动触发
type Report struct {
	Dir     string
	Trigger string
	Result  *reconciler.Result
	Err     error
	At      time.Time
}

// Dispatcher 消费事件，在任务池中等待文件稳定后整理所在目录
// 不同目录互不影响；同一目录的并发整理依靠幂等性而不是加锁
type Dispatcher struct {
	ctx        context.Context
	cancel     context.CancelFunc
	detector   *detector.Detector
	reconciler *reconciler.Reconciler
	pool       *Pool
	reports    chan Report

	mu      sync.Mutex
	pending map[string]struct{}
	closed  bool
	wg      sync.WaitGroup
}

func NewDispatcher(ctx context.Context, det *detector.Detector, rec *reconciler.Reconciler, workers int) (*Dispatcher, error) {
	pool, err := NewPool(workers)
	if err != nil {
		return nil, err
	}

	logger.Get().Debug().Int("workers", pool.Workers()).Msg("调度器已就绪")

	ctx, cancel := context.WithCancel(ctx)
	return &Dispatcher{
		ctx:        ctx,
		cancel:     cancel,
		detector:   det,
		reconciler: rec,
		pool:       pool,
		reports:    make(chan Report, 64),
		pending:    make(map[string]struct{}),
	}, nil
}

func (d *Dispatcher) Reports() <-chan Report {
	return d.reports
}

// Run 阻塞消费 events，直到通道关闭或 ctx 取消
func (d *Dispatcher) Run(events <-chan Event) {
	for {
		select {
		case <-d.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			d.Handle(ev)
		}
	}
}

// Handle 处理单个事件，返回是否提交了新任务
func (d *Dispatcher) Handle(ev Event) bool {
	if ev.IsDir {
		logger.Get().Debug().Str("path", ev.Path).Msg("忽略新建目录")
		return false
	}
	if d.detector.IsIncomplete(ev.Path) {
		logger.Get().Debug().Str("path", ev.Path).Msg("下载尚未完成，等待重命名事件")
		return false
	}

	return d.submit(ev.Path, func() {
		if !d.detector.AwaitStable(d.ctx, ev.Path) {
			return
		}
		d.reconcile(ev.Dir, ev.Path)
	})
}

// SortNow 立即整理 dir，不等待文件稳定
func (d *Dispatcher) SortNow(dir string) bool {
	return d.submit("", func() {
		d.reconcile(dir, "")
	})
}

func (d *Dispatcher) submit(key string, task func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if key != "" {
		if _, ok := d.pending[key]; ok {
			d.mu.Unlock()
			logger.Get().Debug().Str("path", key).Msg("该文件已在等待中")
			return false
		}
		d.pending[key] = struct{}{}
	}
	d.wg.Add(1)
	d.mu.Unlock()

	err := d.pool.Submit(func() {
		defer d.wg.Done()
		defer d.release(key)
		task()
	})
	if err != nil {
		d.wg.Done()
		d.release(key)
		logger.Get().Error().Err(err).Str("path", key).Msg("提交任务失败")
		return false
	}
	return true
}

func (d *Dispatcher) release(key string) {
	if key == "" {
		return
	}
	d.mu.Lock()
	delete(d.pending, key)
	d.mu.Unlock()
}

func (d *Dispatcher) reconcile(dir, trigger string) {
	result, err := d.reconciler.Reconcile(dir)
	if err != nil {
		logger.Get().Error().Err(err).Str("dir", dir).Msg("整理目录失败")
	}

	report := Report{
		Dir:     dir,
		Trigger: trigger,
		Result:  result,
		Err:     err,
		At:      time.Now(),
	}

	select {
	case d.reports <- report:
	case <-d.ctx.Done():
	}
}

// Close 取消正在等待的检测，等待任务结束后关闭 Reports
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
	d.pool.Release()
	close(d.reports)
}
