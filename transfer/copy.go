package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Learting/leartools/world"
)

// ProgressCallback 复制进度回调
type ProgressCallback func(current, total int, message string)

// Job 一次复制任务
type Job struct {
	SourceWorld string
	DestWorld   string
	// SubPath 区域目录相对世界根目录的路径
	SubPath  string
	Plan     Plan
	Progress ProgressCallback
}

// Result 复制结果
type Result struct {
	Regions int
	Bytes   int64
}

// Execute 复制计划中的全部区域文件，最后复制 level.dat
func Execute(job Job) (Result, error) {
	var res Result
	total := len(job.Plan.Available) + 1
	progress := job.Progress
	if progress == nil {
		progress = func(int, int, string) {}
	}

	srcDir := filepath.Join(job.SourceWorld, job.SubPath)
	dstDir := filepath.Join(job.DestWorld, job.SubPath)
	for i, name := range job.Plan.Available {
		n, err := copyFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name))
		if err != nil {
			return res, err
		}
		res.Regions++
		res.Bytes += n
		progress(i+1, total, name)
	}

	n, err := copyFile(
		filepath.Join(job.SourceWorld, world.LevelFile),
		filepath.Join(job.DestWorld, world.LevelFile),
	)
	if err != nil {
		return res, err
	}
	res.Bytes += n
	progress(total, total, world.LevelFile)
	return res, nil
}

// copyFile 逐字节复制文件
//
// 先在目标目录建临时文件（不可写时立即失败），写完 fsync 后再改名，
// 失败时不会在目标文件名下留下截断的文件。
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, wrapFS(dst, fmt.Errorf("create %s: %w", dst, err))
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, in)
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync %s: %w", dst, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return 0, wrapFS(dst, fmt.Errorf("chmod %s: %w", dst, err))
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return 0, wrapFS(dst, fmt.Errorf("rename %s: %w", dst, err))
	}
	committed = true
	return n, nil
}
