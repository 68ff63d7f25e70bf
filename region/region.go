package region

import (
	"fmt"
	"regexp"
	"strconv"
)

// GridSize 每个区域文件覆盖的方块边长 (1.16 起为 512)
const GridSize = 512

// FileExtension 区域文件扩展名
const FileExtension = ".mca"

var fileNamePattern = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)

// Coord 区域网格坐标
type Coord struct {
	X int
	Z int
}

// Of 将方块坐标换算为区域坐标，向负无穷取整
func Of(v int) int {
	q := v / GridSize
	if v%GridSize != 0 && v < 0 {
		q--
	}
	return q
}

// CoordOf 将一个方块点 (x, z) 换算为区域坐标
func CoordOf(x, z int) Coord {
	return Coord{X: Of(x), Z: Of(z)}
}

// FileName 返回区域文件名，例如 r.-1.0.mca
func (c Coord) FileName() string {
	return fmt.Sprintf("r.%d.%d%s", c.X, c.Z, FileExtension)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}

// ParseFileName 从区域文件名解析区域坐标
func ParseFileName(name string) (Coord, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return Coord{}, false
	}
	x, err := strconv.Atoi(m[1])
	if err != nil {
		return Coord{}, false
	}
	z, err := strconv.Atoi(m[2])
	if err != nil {
		return Coord{}, false
	}
	return Coord{X: x, Z: z}, true
}

// IsFileName 判断文件名是否符合区域文件命名格式
func IsFileName(name string) bool {
	_, ok := ParseFileName(name)
	return ok
}
