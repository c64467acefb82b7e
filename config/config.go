package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/moyu-x/fileguard/pkg/detector"
	"github.com/moyu-x/fileguard/pkg/reconciler"
	"github.com/moyu-x/fileguard/pkg/watcher"
)

const (
	// 配置文件目录名
	AppName = "fileguard"

	// 环境变量前缀，例如 FILEGUARD_LOGGING_LEVEL
	EnvPrefix = "FILEGUARD"
)

// DefaultWatchDirs 默认监控的目录
var DefaultWatchDirs = []string{"~/Desktop", "~/Downloads"}

type Config struct {
	Watch struct {
		Dirs        []string `mapstructure:"dirs"`
		InitialSort bool     `mapstructure:"initial_sort"`
	} `mapstructure:"watch"`
	Detector struct {
		MaxAttempts       int           `mapstructure:"max_attempts"`
		PollInterval      time.Duration `mapstructure:"poll_interval"`
		SampleWait        time.Duration `mapstructure:"sample_wait"`
		IncompleteMarkers []string      `mapstructure:"incomplete_markers"`
	} `mapstructure:"detector"`
	Reconciler struct {
		OnConflict string `mapstructure:"on_conflict"`
	} `mapstructure:"reconciler"`
	Classifier struct {
		SniffContent bool `mapstructure:"sniff_content"`
	} `mapstructure:"classifier"`
	Performance struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"performance"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
}

func setDefaults() {
	viper.SetDefault("watch.dirs", DefaultWatchDirs)
	viper.SetDefault("watch.initial_sort", false)
	viper.SetDefault("detector.max_attempts", detector.DefaultMaxAttempts)
	viper.SetDefault("detector.poll_interval", detector.DefaultPollInterval)
	viper.SetDefault("detector.sample_wait", detector.DefaultSampleWait)
	viper.SetDefault("detector.incomplete_markers", detector.DefaultIncompleteMarkers)
	viper.SetDefault("reconciler.on_conflict", string(reconciler.ConflictSkip))
	viper.SetDefault("classifier.sniff_content", false)
	viper.SetDefault("performance.workers", watcher.DefaultWorkers)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

// Load 读取配置，path 为空时在默认位置查找 config.yaml
// 找不到配置文件不算错误，全部使用默认值
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		viper.AddConfigPath("$HOME/." + AppName)
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/" + AppName)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if _, err := reconciler.ParseConflictPolicy(c.Reconciler.OnConflict); err != nil {
		return err
	}
	if c.Detector.MaxAttempts <= 0 {
		return fmt.Errorf("detector.max_attempts 必须大于 0: %d", c.Detector.MaxAttempts)
	}
	if c.Detector.PollInterval < 0 || c.Detector.SampleWait < 0 {
		return fmt.Errorf("detector 的等待时间不能为负数")
	}
	if c.Performance.Workers < 0 {
		return fmt.Errorf("performance.workers 不能为负数: %d", c.Performance.Workers)
	}
	return nil
}

// DetectorOptions 转换为检测器参数
func (c *Config) DetectorOptions() detector.Options {
	return detector.Options{
		MaxAttempts:       c.Detector.MaxAttempts,
		PollInterval:      c.Detector.PollInterval,
		SampleWait:        c.Detector.SampleWait,
		IncompleteMarkers: c.Detector.IncompleteMarkers,
	}
}

// ConflictPolicy 返回已校验的冲突策略
func (c *Config) ConflictPolicy() reconciler.ConflictPolicy {
	policy, err := reconciler.ParseConflictPolicy(c.Reconciler.OnConflict)
	if err != nil {
		return reconciler.ConflictSkip
	}
	return policy
}

// WatchDirs 展开 ~ 后的监控目录
func (c *Config) WatchDirs() []string {
	dirs := make([]string, 0, len(c.Watch.Dirs))
	for _, dir := range c.Watch.Dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, ExpandPath(dir))
	}
	return dirs
}

// ExpandPath 把开头的 ~ 替换为用户主目录
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
