package classifier

import (
	"io"
	"mime"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/pkg/logger"
)

// HeaderSize 内容嗅探读取的文件头部字节数
const HeaderSize = 261

// HintProvider 为文件提供内容类型提示，返回空字符串表示没有提示
type HintProvider interface {
	Hint(path string) string
}

// NameLookup 按文件名查询系统 MIME 表
type NameLookup struct{}

func (NameLookup) Hint(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// ContentSniffer 读取文件头部，用 filetype 识别真实类型
type ContentSniffer struct {
	Fs afero.Fs
}

func NewContentSniffer(fs afero.Fs) *ContentSniffer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ContentSniffer{Fs: fs}
}

func (s *ContentSniffer) Hint(path string) string {
	file, err := s.Fs.Open(path)
	if err != nil {
		logger.Get().Debug().Err(err).Str("path", path).Msg("打开文件失败，跳过内容嗅探")
		return ""
	}
	defer file.Close()

	head := make([]byte, HeaderSize)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		logger.Get().Debug().Err(err).Str("path", path).Msg("读取文件头部失败")
		return ""
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// Chain 依次询问，返回第一个非空提示
type Chain []HintProvider

func (c Chain) Hint(path string) string {
	for _, p := range c {
		if p == nil {
			continue
		}
		if hint := p.Hint(path); hint != "" {
			return hint
		}
	}
	return ""
}

// NoHint 始终没有提示
type NoHint struct{}

func (NoHint) Hint(string) string { return "" }
