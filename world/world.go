package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LevelFile 世界根目录下的元数据文件
const LevelFile = "level.dat"

// DirectoryType 区域文件所在的维度目录类型
type DirectoryType int

const (
	Overworld DirectoryType = iota
	Nether
	End
)

// regionLocations 按探测顺序排列的区域目录
var regionLocations = []struct {
	kind DirectoryType
	path string
}{
	{Overworld, "region"},
	{Nether, "DIM-1/region"},
	{End, "DIM1/region"},
}

// SubPath 该维度下区域目录相对于世界根目录的路径
func (t DirectoryType) SubPath() string {
	for _, loc := range regionLocations {
		if loc.kind == t {
			return filepath.FromSlash(loc.path)
		}
	}
	return ""
}

func (t DirectoryType) String() string {
	switch t {
	case Overworld:
		return "overworld"
	case Nether:
		return "nether"
	case End:
		return "end"
	default:
		return fmt.Sprintf("DirectoryType(%d)", int(t))
	}
}

// PathNotFoundError 必需的路径、文件或目录布局不存在
type PathNotFoundError struct {
	Paths []string
	Kind  string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, strings.Join(e.Paths, ", "))
}

// CheckInputs 检查旧世界目录、level.dat 与领地存档是否都存在
//
// 所有缺失项一次性报告。
func CheckInputs(residenceFile, worldDir string) error {
	var missing []string
	if !isDir(worldDir) {
		missing = append(missing, worldDir)
	}
	for _, f := range []string{filepath.Join(worldDir, LevelFile), residenceFile} {
		if !isFile(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &PathNotFoundError{Paths: missing, Kind: "input path"}
	}
	return nil
}

// Classify 探测世界目录的类型，返回第一个存在的区域目录
func Classify(worldDir string) (DirectoryType, error) {
	for _, loc := range regionLocations {
		if isDir(filepath.Join(worldDir, filepath.FromSlash(loc.path))) {
			return loc.kind, nil
		}
	}
	return 0, &PathNotFoundError{Paths: []string{worldDir}, Kind: "region directory"}
}

// RegionDir 世界目录下指定类型的区域目录
func RegionDir(worldDir string, t DirectoryType) string {
	return filepath.Join(worldDir, t.SubPath())
}

// Contains 判断 path 是否等于 root 或位于 root 之内
func Contains(root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists 判断路径是否已被文件或目录占用
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
