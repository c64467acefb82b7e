package watcher

import (
	"github.com/panjf2000/ants/v2"

	"github.com/moyu-x/fileguard/pkg/logger"
)

const DefaultWorkers = 4

// Pool 执行检测和整理任务的 goroutine 池
type Pool struct {
	workers int
	pool    *ants.Pool
}

func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	p, err := ants.NewPool(workers)
	if err != nil {
		logger.Get().Error().Err(err).Msg("创建 goroutine 池失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("创建任务池，工作线程数: %d", workers)
	return &Pool{workers: workers, pool: p}, nil
}

func (p *Pool) Submit(task func()) error {
	return p.pool.Submit(task)
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) Release() {
	p.pool.Release()
}
