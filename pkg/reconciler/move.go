package reconciler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// rename 策略下寻找可用文件名的最大尝试次数
const maxRenameAttempts = 100

// moveInto 把 src 移到 dir 下，保留文件名
// 返回最终路径；失败时返回对应的 Skip
func (r *Reconciler) moveInto(src, dir string) (string, *Skip) {
	target := filepath.Join(dir, filepath.Base(src))
	dst := target

	if r.policy == ConflictOverwrite {
		if err := r.fs.Rename(src, dst); err != nil {
			return "", r.moveFailed(src, err)
		}
		return dst, nil
	}

	for attempt := 0; attempt < maxRenameAttempts; attempt++ {
		exists, err := afero.Exists(r.fs, dst)
		if err != nil {
			return "", &Skip{Path: src, Reason: SkipIO, Err: err}
		}

		if exists {
			if r.policy != ConflictRename {
				return "", conflictSkip(src, dst)
			}
			if dst, err = r.uniquePath(target); err != nil {
				return "", &Skip{Path: src, Reason: SkipIO, Err: err}
			}
		}

		err = r.renameNoReplace(src, dst)
		switch {
		case err == nil:
			return dst, nil
		case errors.Is(err, os.ErrExist):
			// 检查之后目标位置出现了同名文件
			if r.policy != ConflictRename {
				return "", conflictSkip(src, dst)
			}
		default:
			return "", r.moveFailed(src, err)
		}
	}

	return "", &Skip{Path: src, Reason: SkipIO, Err: fmt.Errorf("找不到可用的文件名: %s", dst)}
}

// renameNoReplace 移动文件，dst 已存在时返回 os.ErrExist
// 本地文件系统用硬链接加删除实现；不支持硬链接时退回普通 Rename
func (r *Reconciler) renameNoReplace(src, dst string) error {
	if _, ok := r.fs.(*afero.OsFs); ok {
		err := os.Link(src, dst)
		switch {
		case err == nil:
			if err := os.Remove(src); err != nil {
				_ = os.Remove(dst)
				return err
			}
			return nil
		case errors.Is(err, os.ErrExist), errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	return r.fs.Rename(src, dst)
}

// moveFailed 区分源文件消失和其他 IO 错误
func (r *Reconciler) moveFailed(src string, err error) *Skip {
	// 源文件被其他进程移走或删除属于正常情况
	if _, statErr := r.lstat(src); os.IsNotExist(statErr) {
		return &Skip{Path: src, Reason: SkipVanished, Err: err}
	}
	return &Skip{Path: src, Reason: SkipIO, Err: err}
}

func conflictSkip(src, dst string) *Skip {
	return &Skip{
		Path:   src,
		Reason: SkipConflict,
		Err:    fmt.Errorf("目标文件已存在: %s", dst),
	}
}

// uniquePath 在文件名后追加 _1、_2 ... 直到不存在
// .env 这类以点开头的文件名视为没有扩展名，得到 .env_1
func (r *Reconciler) uniquePath(path string) (string, error) {
	dir, name := filepath.Split(path)
	stem, ext := splitExt(name)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		exists, err := afero.Exists(r.fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return name[:len(name)-len(ext)], ext
}

func (r *Reconciler) lstat(path string) (os.FileInfo, error) {
	if lst, ok := r.fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return r.fs.Stat(path)
}
