package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/pkg/logger"
)

const (
	DefaultMaxAttempts  = 5
	DefaultPollInterval = 2 * time.Second
	DefaultSampleWait   = 2 * time.Second
)

// DefaultIncompleteMarkers 下载未完成的临时文件后缀
var DefaultIncompleteMarkers = []string{".crdownload", ".part"}

// State 单次检测的结果
type State int

const (
	Sampling State = iota
	Stable
	Unstable
	Exhausted
)

func (s State) String() string {
	switch s {
	case Sampling:
		return "sampling"
	case Stable:
		return "stable"
	case Unstable:
		return "unstable"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// SleepFunc 等待 d，ctx 取消时提前返回错误
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options 检测参数，零值字段使用默认值
type Options struct {
	MaxAttempts       int
	PollInterval      time.Duration
	SampleWait        time.Duration
	IncompleteMarkers []string
}

// Detector 判断文件是否已经写完
// 不保存任何跨调用的状态
type Detector struct {
	fs      afero.Fs
	opts    Options
	markers []string
	sleep   SleepFunc
}

func New(fs afero.Fs, opts Options) *Detector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.SampleWait <= 0 {
		opts.SampleWait = DefaultSampleWait
	}
	if opts.IncompleteMarkers == nil {
		opts.IncompleteMarkers = DefaultIncompleteMarkers
	}

	markers := make([]string, 0, len(opts.IncompleteMarkers))
	for _, m := range opts.IncompleteMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}

	return &Detector{
		fs:      fs,
		opts:    opts,
		markers: markers,
		sleep:   sleepContext,
	}
}

// WithSleep 替换等待函数，测试中用来驱动文件变化
func (d *Detector) WithSleep(sleep SleepFunc) *Detector {
	if sleep != nil {
		d.sleep = sleep
	}
	return d
}

// IsIncomplete 文件名是否带有未完成下载的标记
func (d *Detector) IsIncomplete(path string) bool {
	return HasMarker(path, d.markers)
}

// HasMarker 忽略大小写判断 path 是否以任一标记结尾
func HasMarker(path string, markers []string) bool {
	name := strings.ToLower(path)
	for _, m := range markers {
		if strings.HasSuffix(name, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// IsSafeToMove 做一次双采样检测
func (d *Detector) IsSafeToMove(path string) bool {
	return d.check(context.Background(), path) == Stable
}

// AwaitStable 最多重试 MaxAttempts 次，每次之间等待 PollInterval
// 带未完成标记的文件直接返回 false，不会重试
func (d *Detector) AwaitStable(ctx context.Context, path string) bool {
	if d.IsIncomplete(path) {
		logger.Get().Debug().Str("path", path).Msg("未完成的下载文件，跳过")
		return false
	}

	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return false
		}

		state := d.check(ctx, path)
		logger.Get().Debug().
			Str("path", path).
			Int("attempt", attempt).
			Str("state", state.String()).
			Msg("文件稳定性检测")

		if state == Stable {
			return true
		}
		if attempt == d.opts.MaxAttempts {
			break
		}
		if err := d.sleep(ctx, d.opts.PollInterval); err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("等待被取消")
			return false
		}
	}

	logger.Get().Info().
		Str("path", path).
		Int("attempts", d.opts.MaxAttempts).
		Str("state", Exhausted.String()).
		Msg("文件始终未稳定，放弃")
	return false
}

// check 执行一次双采样：记录大小，等待 SampleWait，再次读取大小
func (d *Detector) check(ctx context.Context, path string) State {
	if d.IsIncomplete(path) {
		return Unstable
	}

	first, ok := d.sample(path)
	if !ok {
		return Unstable
	}

	if err := d.sleep(ctx, d.opts.SampleWait); err != nil {
		return Unstable
	}

	second, ok := d.sample(path)
	if !ok {
		return Unstable
	}

	if first.size != second.size {
		logger.Get().Debug().
			Str("path", second.path).
			Str("ext", second.ext).
			Int64("before", first.size).
			Int64("after", second.size).
			Msg("文件大小仍在变化")
		return Unstable
	}
	return Stable
}

// entry 一次采样得到的文件信息
type entry struct {
	path string
	size int64
	ext  string
}

func (d *Detector) sample(path string) (entry, bool) {
	info, err := d.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Get().Debug().Str("path", path).Msg("文件已消失")
		} else {
			// 文件可能被其他进程锁定，视为尚未稳定
			logger.Get().Debug().Err(err).Str("path", path).Msg("读取文件大小失败")
		}
		return entry{}, false
	}
	if !info.Mode().IsRegular() {
		return entry{}, false
	}
	return entry{path: path, size: info.Size(), ext: strings.ToLower(filepath.Ext(path))}, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
