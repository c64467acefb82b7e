package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/moyu-x/fileguard/pkg/reconciler"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Detector.MaxAttempts != 5 {
		t.Errorf("Expected 5 attempts, got %d", cfg.Detector.MaxAttempts)
	}
	if cfg.Detector.PollInterval != 2*time.Second || cfg.Detector.SampleWait != 2*time.Second {
		t.Errorf("Unexpected detector timings: %v %v", cfg.Detector.PollInterval, cfg.Detector.SampleWait)
	}
	if cfg.ConflictPolicy() != reconciler.ConflictSkip {
		t.Errorf("Expected skip policy, got %s", cfg.ConflictPolicy())
	}
	if cfg.Performance.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Performance.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected info level, got %s", cfg.Logging.Level)
	}
	if len(cfg.Watch.Dirs) != 2 {
		t.Errorf("Expected default watch dirs, got %v", cfg.Watch.Dirs)
	}
}

func TestLoad_File(t *testing.T) {
	viper.Reset()

	path := writeConfig(t, `
watch:
  dirs:
    - /data/inbox
  initial_sort: true
detector:
  max_attempts: 3
  poll_interval: 500ms
  sample_wait: 1s
  incomplete_markers: [".part", ".tmp"]
reconciler:
  on_conflict: rename
classifier:
  sniff_content: true
performance:
  workers: 8
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.WatchDirs(); len(got) != 1 || got[0] != "/data/inbox" {
		t.Errorf("Unexpected watch dirs: %v", got)
	}
	if !cfg.Watch.InitialSort || !cfg.Classifier.SniffContent {
		t.Error("Expected boolean options to be enabled")
	}

	opts := cfg.DetectorOptions()
	if opts.MaxAttempts != 3 || opts.PollInterval != 500*time.Millisecond || opts.SampleWait != time.Second {
		t.Errorf("Unexpected detector options: %+v", opts)
	}
	if len(opts.IncompleteMarkers) != 2 || opts.IncompleteMarkers[1] != ".tmp" {
		t.Errorf("Unexpected markers: %v", opts.IncompleteMarkers)
	}
	if cfg.ConflictPolicy() != reconciler.ConflictRename {
		t.Errorf("Expected rename policy, got %s", cfg.ConflictPolicy())
	}
	if cfg.Performance.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Performance.Workers)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("FILEGUARD_RECONCILER_ON_CONFLICT", "overwrite")

	cfg, err := Load(writeConfig(t, "logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConflictPolicy() != reconciler.ConflictOverwrite {
		t.Errorf("Expected overwrite policy, got %s", cfg.ConflictPolicy())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected warn level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad policy", "reconciler:\n  on_conflict: merge\n"},
		{"zero attempts", "detector:\n  max_attempts: 0\n"},
		{"negative workers", "performance:\n  workers: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/Downloads", filepath.Join(home, "Downloads")},
		{"/srv/files", "/srv/files"},
		{"~user/x", "~user/x"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
