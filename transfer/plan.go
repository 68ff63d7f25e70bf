// Package transfer 规划并执行从旧世界到新世界的区域文件复制
package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Learting/leartools/region"
)

// Listing 源区域目录中的普通文件（含指向普通文件的符号链接），文件名到大小
type Listing map[string]int64

// ReadListing 读取区域目录的实际文件列表
func ReadListing(dir string) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list region directory: %w", err)
	}

	listing := make(Listing, len(entries))
	for _, e := range entries {
		var info os.FileInfo
		switch {
		case e.Type().IsRegular():
			info, err = e.Info()
		case e.Type()&os.ModeSymlink != 0:
			// 跟随链接，只收录指向普通文件的
			info, err = os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		listing[e.Name()] = info.Size()
	}
	return listing, nil
}

// Plan 覆盖集合与源目录比对后的复制计划
type Plan struct {
	// Available 源目录中存在、需要复制的区域文件（有序）
	Available []string
	// Missing 计算得到但源目录中不存在的区域文件（有序）
	Missing []string

	SourceRegions int
	SourceBytes   int64
	CopyBytes     int64
}

// NewPlan 把覆盖集合划分为 available 与 missing 两部分
func NewPlan(cov region.Coverage, listing Listing) Plan {
	var p Plan
	for _, name := range cov.Names() {
		size, ok := listing[name]
		if !ok {
			p.Missing = append(p.Missing, name)
			continue
		}
		p.Available = append(p.Available, name)
		p.CopyBytes += size
	}
	for name, size := range listing {
		if region.IsFileName(name) {
			p.SourceRegions++
			p.SourceBytes += size
		}
	}
	return p
}
