package app

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/config"
	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/reconciler"
)

type SortOptions struct {
	ConfigFile string
	Dir        string
	// 为空时使用配置中的 reconciler.on_conflict
	OnConflict string
	Verbose    bool
}

// RunSort 对一个目录执行一次整理
func RunSort(opts *SortOptions) (*reconciler.Result, error) {
	cfg, err := loadConfig(opts.ConfigFile, opts.Verbose, false)
	if err != nil {
		return nil, err
	}

	policy := cfg.ConflictPolicy()
	if opts.OnConflict != "" {
		policy, err = reconciler.ParseConflictPolicy(opts.OnConflict)
		if err != nil {
			return nil, err
		}
	}

	dir := config.ExpandPath(opts.Dir)
	rec := newReconciler(cfg, afero.NewOsFs(), policy)
	logger.Get().Info().Str("dir", dir).Str("on_conflict", string(rec.Policy())).Msg("开始整理目录")

	start := time.Now()

	result, err := rec.Reconcile(dir)
	if err != nil {
		return nil, fmt.Errorf("整理目录失败: %w", err)
	}

	logger.Get().Debug().
		Str("pass", result.PassID).
		Dur("duration", time.Since(start).Round(time.Millisecond)).
		Msg("整理耗时")

	return result, nil
}

type InventoryOptions struct {
	ConfigFile string
	Dir        string
	Verbose    bool
}

// RunInventory 列出目录下各分类文件夹中的文件
func RunInventory(opts *InventoryOptions) ([]reconciler.Placement, error) {
	cfg, err := loadConfig(opts.ConfigFile, opts.Verbose, false)
	if err != nil {
		return nil, err
	}

	rec := newReconciler(cfg, afero.NewOsFs(), cfg.ConflictPolicy())
	return rec.Inventory(config.ExpandPath(opts.Dir))
}
