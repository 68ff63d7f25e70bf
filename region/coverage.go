package region

import (
	"sort"

	"github.com/Learting/leartools/residence"
)

// Coverage 领地覆盖到的区域文件名集合
type Coverage map[string]struct{}

// Cover 计算所有领地矩形覆盖的区域文件集合
//
// 每块领地按两个对角在区域网格上的范围（两端都包含）展开；
// 多块领地重叠的区域只记录一次。
func Cover(plots []residence.Plot) Coverage {
	cov := make(Coverage)
	for _, p := range plots {
		lo := CoordOf(p.Min.X, p.Min.Z)
		hi := CoordOf(p.Max.X, p.Max.Z)
		minX, maxX := order(lo.X, hi.X)
		minZ, maxZ := order(lo.Z, hi.Z)

		for rx := minX; rx <= maxX; rx++ {
			for rz := minZ; rz <= maxZ; rz++ {
				cov.Add(Coord{X: rx, Z: rz})
			}
		}
	}
	return cov
}

// Add 加入一个区域
func (c Coverage) Add(coord Coord) {
	c[coord.FileName()] = struct{}{}
}

// Contains 判断区域文件名是否在集合中
func (c Coverage) Contains(name string) bool {
	_, ok := c[name]
	return ok
}

// Len 集合大小
func (c Coverage) Len() int {
	return len(c)
}

// Names 返回排序后的区域文件名
func (c Coverage) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sortNames(names)
	return names
}

// sortNames 按区域坐标排序，无法解析的名字排在最后并按字典序
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, okA := ParseFileName(names[i])
		b, okB := ParseFileName(names[j])
		switch {
		case okA && okB:
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Z < b.Z
		case okA != okB:
			return okA
		default:
			return names[i] < names[j]
		}
	})
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
