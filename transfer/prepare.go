package transfer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Learting/leartools/world"
)

// ErrOverwriteDeclined 用户拒绝覆盖已存在的目标路径
var ErrOverwriteDeclined = errors.New("overwrite of existing destination declined")

// ConfirmFunc 目标路径已被占用时询问是否删除；返回 true 表示确认
type ConfirmFunc func(path string) (bool, error)

// PermissionError 创建或清理目标目录时权限不足
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// wrapFS 权限错误统一转为 PermissionError
func wrapFS(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return &PermissionError{Path: path, Err: err}
	}
	return err
}

// Prepare 创建新世界目录与其中的区域目录
//
// 目标路径已存在（文件或目录）时必须经 confirm 确认后才会删除；
// 未确认时不做任何修改并返回 ErrOverwriteDeclined。
func Prepare(dest, subPath string, confirm ConfirmFunc) error {
	exists, err := world.Exists(dest)
	if err != nil {
		return wrapFS(dest, err)
	}

	if exists {
		if confirm == nil {
			return ErrOverwriteDeclined
		}
		ok, err := confirm(dest)
		if err != nil {
			return fmt.Errorf("confirm overwrite: %w", err)
		}
		if !ok {
			return ErrOverwriteDeclined
		}
		if err := os.RemoveAll(dest); err != nil {
			return wrapFS(dest, fmt.Errorf("remove %s: %w", dest, err))
		}
	}

	regionDir := filepath.Join(dest, subPath)
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		return wrapFS(regionDir, fmt.Errorf("create %s: %w", regionDir, err))
	}
	return nil
}
