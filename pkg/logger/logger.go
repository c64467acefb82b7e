package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var Logger *zerolog.Logger

// consoleOutput 控制台日志的输出位置
// 标准输出留给命令的结果表格
var consoleOutput io.Writer = os.Stderr

// ParseLevel 解析日志级别字符串，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
// level: 日志级别 ("debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台（标准错误）
func Init(level string, file string) error {
	output := consoleOutput

	if file != "" {
		// 如果指定了文件，同时输出到文件和控制台
		fileWriter, err := openLogFile(file)
		if err != nil {
			return err
		}
		output = io.MultiWriter(consoleOutput, fileWriter)
	}

	setup(level, output, file != "")
	return nil
}

// InitFileOnly 只写日志文件，不输出到控制台
// 终端界面占用标准输出时使用；file 为空时丢弃所有日志
func InitFileOnly(level string, file string) error {
	if file == "" {
		setup(level, io.Discard, true)
		return nil
	}

	fileWriter, err := openLogFile(file)
	if err != nil {
		return err
	}
	setup(level, fileWriter, true)
	return nil
}

func openLogFile(file string) (*os.File, error) {
	return os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func setup(level string, output io.Writer, noColor bool) {
	// 设置为控制台友好的格式，写文件时关闭颜色
	console := zerolog.ConsoleWriter{Out: output, TimeFormat: "2006-01-02 15:04:05", NoColor: noColor}
	logger := zerolog.New(console).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(level))

	Logger = &logger
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
