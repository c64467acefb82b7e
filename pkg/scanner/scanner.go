package scanner

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileWalker 列出目录第一层的普通文件
// 子目录与符号链接永远不会被返回
type FileWalker struct {
	Fs afero.Fs
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileWalker{Fs: fs}
}

// Walk 按文件名顺序对 root 下的每个普通文件调用 callback，不递归
func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error) error {
	infos, err := afero.ReadDir(w.Fs, root)
	if err != nil {
		return err
	}

	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		if err := callback(filepath.Join(root, info.Name()), info); err != nil {
			return err
		}
	}
	return nil
}

// Files 返回 root 下的普通文件路径
func (w *FileWalker) Files(root string) ([]string, error) {
	var files []string
	err := w.Walk(root, func(path string, info os.FileInfo) error {
		files = append(files, path)
		return nil
	})
	return files, err
}

// Subdirs 返回 root 下的子目录名，不包含指向目录的符号链接
func (w *FileWalker) Subdirs(root string) ([]string, error) {
	infos, err := afero.ReadDir(w.Fs, root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, info := range infos {
		if info.IsDir() {
			dirs = append(dirs, info.Name())
		}
	}
	return dirs, nil
}
