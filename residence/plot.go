package residence

// Point 方块坐标系中的一个点（只关心 X 和 Z）
type Point struct {
	X int
	Z int
}

// Plot 一块领地，由两个对角点组成
//
// Min/Max 已按轴归一化：Min.X <= Max.X 且 Min.Z <= Max.Z。
type Plot struct {
	Min Point
	Max Point
}

// NewPlot 由存档中的两个角点创建领地，并对每个轴取 min/max
func NewPlot(corner1, corner2 Point) Plot {
	p := Plot{Min: corner1, Max: corner2}
	if p.Min.X > p.Max.X {
		p.Min.X, p.Max.X = p.Max.X, p.Min.X
	}
	if p.Min.Z > p.Max.Z {
		p.Min.Z, p.Max.Z = p.Max.Z, p.Min.Z
	}
	return p
}
