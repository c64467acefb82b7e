package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestGet_Uninitialized(t *testing.T) {
	Logger = nil
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}

func TestInitFileOnly_WritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "fileguard.log")

	if err := InitFileOnly("info", logFile); err != nil {
		t.Fatalf("InitFileOnly() error = %v", err)
	}
	Get().Info().Msg("hello from test")
	Get().Debug().Msg("filtered out")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("Expected log file to contain message, got %q", string(data))
	}
	if strings.Contains(string(data), "filtered out") {
		t.Error("Expected debug message to be filtered at info level")
	}
}

func TestInitFileOnly_NoFile(t *testing.T) {
	if err := InitFileOnly("debug", ""); err != nil {
		t.Fatalf("InitFileOnly() error = %v", err)
	}
	if Get().GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %v", Get().GetLevel())
	}
}

func TestInit_ConsoleUsesStderr(t *testing.T) {
	if consoleOutput != os.Stderr {
		t.Fatal("Console logs must go to stderr so stdout stays clean")
	}

	var buf bytes.Buffer
	consoleOutput = &buf
	defer func() { consoleOutput = os.Stderr }()

	logFile := filepath.Join(t.TempDir(), "fileguard.log")
	if err := Init("info", logFile); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Get().Info().Msg("console and file")

	if !strings.Contains(buf.String(), "console and file") {
		t.Errorf("Expected console output, got %q", buf.String())
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "console and file") {
		t.Errorf("Expected log file to contain message, got %q", string(data))
	}
}
