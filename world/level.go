package world

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Learting/leartools/nbt"
)

// LevelInfo level.dat 中用于展示的字段
type LevelInfo struct {
	Name        string
	DataVersion int32
}

// ReadLevelInfo 读取世界名称与数据版本，只用于输出展示
func ReadLevelInfo(worldDir string) (LevelInfo, error) {
	f, err := os.Open(filepath.Join(worldDir, LevelFile))
	if err != nil {
		return LevelInfo{}, err
	}
	defer f.Close()

	_, root, err := nbt.ReadGzip(f)
	if err != nil {
		return LevelInfo{}, fmt.Errorf("read %s: %w", LevelFile, err)
	}

	data, ok := root["Data"].(nbt.Compound)
	if !ok {
		return LevelInfo{}, fmt.Errorf("read %s: missing Data compound", LevelFile)
	}
	var info LevelInfo
	info.Name, _ = data["LevelName"].(string)
	info.DataVersion, _ = data["DataVersion"].(int32)
	return info, nil
}
