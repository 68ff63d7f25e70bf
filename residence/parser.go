package residence

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding Residence 插件在中文服务器上写出的存档编码
const DefaultEncoding = "gbk"

// 存档中记录领地两个角点的四个字段
const (
	LabelX1 = "X1"
	LabelZ1 = "Z1"
	LabelX2 = "X2"
	LabelZ2 = "Z2"
)

// Labels 按输出顺序排列的字段名
var Labels = []string{LabelX1, LabelZ1, LabelX2, LabelZ2}

var fieldLine = regexp.MustCompile(`^["']?(X1|Z1|X2|Z2)["']?: (.*)$`)

// FormatError 领地存档格式错误
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("residence file format error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("residence file format error: %s", e.Msg)
}

// Corners 按字段拆开的四列坐标，每块领地在每列中占同一个下标
type Corners struct {
	X1 []int
	Z1 []int
	X2 []int
	Z2 []int
}

// Len 领地数量
func (c Corners) Len() int {
	return len(c.X1)
}

// Plots 把四列坐标组装成归一化后的领地
func (c Corners) Plots() []Plot {
	plots := make([]Plot, 0, c.Len())
	for i := range c.X1 {
		plots = append(plots, NewPlot(
			Point{X: c.X1[i], Z: c.Z1[i]},
			Point{X: c.X2[i], Z: c.Z2[i]},
		))
	}
	return plots
}

func (c *Corners) column(label string) *[]int {
	switch label {
	case LabelX1:
		return &c.X1
	case LabelZ1:
		return &c.Z1
	case LabelX2:
		return &c.X2
	default:
		return &c.Z2
	}
}

// Decode 以宽松模式解码存档内容，无法解码的字节直接丢弃
func Decode(raw []byte, encoding string) (string, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode residence file: %w", err)
	}
	return strings.ReplaceAll(string(decoded), string(utf8.RuneError), ""), nil
}

// Scan 逐行扫描已解码的存档文本，收集四个字段的值
func Scan(text string) (Corners, error) {
	var c Corners

	for i, line := range strings.Split(text, "\n") {
		m := fieldLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		value, err := strconv.Atoi(strings.TrimSpace(m[2]))
		if err != nil {
			return Corners{}, &FormatError{
				Line: i + 1,
				Msg:  fmt.Sprintf("%s is not an integer: %q", m[1], m[2]),
			}
		}
		col := c.column(m[1])
		*col = append(*col, value)
	}

	if err := c.validate(); err != nil {
		return Corners{}, err
	}
	return c, nil
}

func (c *Corners) validate() error {
	counts := make([]string, 0, len(Labels))
	mismatch := false
	for _, label := range Labels {
		n := len(*c.column(label))
		if n == 0 {
			return &FormatError{Msg: fmt.Sprintf("field %s not found", label)}
		}
		if n != c.Len() {
			mismatch = true
		}
		counts = append(counts, fmt.Sprintf("%s=%d", label, n))
	}
	if mismatch {
		return &FormatError{Msg: "field counts differ (" + strings.Join(counts, ", ") + ")"}
	}
	return nil
}

// Parse 解析原始存档字节，返回全部领地
func Parse(raw []byte, encoding string) ([]Plot, error) {
	text, err := Decode(raw, encoding)
	if err != nil {
		return nil, err
	}
	corners, err := Scan(text)
	if err != nil {
		return nil, err
	}
	return corners.Plots(), nil
}

// Load 读取并解析领地存档文件
func Load(path, encoding string) ([]Plot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read residence file: %w", err)
	}
	return Parse(raw, encoding)
}
